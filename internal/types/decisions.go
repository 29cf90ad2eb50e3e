package types

import (
	"github.com/go-playground/validator/v10"
)

// DecisionRequest is the swipe submission body. Field names match the wire
// contract the swipe client already speaks: `_id` is the job identifier and
// `swipeMode` is 1 (apply) or 2 (ignore). Mode values are checked by the
// tracker, not here, so unknown modes get the engine's validation error.
type DecisionRequest struct {
	JobID     string `json:"_id" validate:"required,uuid"`
	SwipeMode int    `json:"swipeMode" validate:"required"`
}

// DecisionResponse acknowledges a recorded decision.
type DecisionResponse struct {
	JobID  string `json:"job_id"`
	UserID string `json:"user_id"`
}

// Validate validates the DecisionRequest using the validator.
func (r *DecisionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
