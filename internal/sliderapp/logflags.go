package sliderapp

import "github.com/edward-ap/rangeslider/internal/logging"

// SetTraceLogEnabled toggles trace output for the slider model and the app.
// Call this before creating the App so its loggers pick up the level.
func SetTraceLogEnabled(b bool) { logging.SetTraceLoggingEnabled(b) }
