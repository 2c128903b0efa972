package component

// PlayerComponent marks the controllable character
type PlayerComponent struct{}

// ObstacleComponent marks a static world object
type ObstacleComponent struct {
	Name string
}
