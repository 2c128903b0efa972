package parameter

// CameraDecayRate is the exponential smoothing rate of camera follow, higher catches up faster
const CameraDecayRate = 5.0
