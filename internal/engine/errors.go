package engine

import "github.com/GoSim-25-26J-441/sir-simulation/pkg/models"

// ErrInvalidArgument marks a precondition violation by the caller. Malformed
// population tokens (models.ErrInvalidToken) match it too.
var ErrInvalidArgument = models.ErrInvalidArgument
