package core

// Entity is a unique identifier for a live object
type Entity uint64

// NoEntity is the zero entity, never issued by a world
const NoEntity Entity = 0
