package handler

const (
	// Request fields
	FieldPlayerID         = "player_id"
	FieldTarget           = "target"
	FieldKind             = "kind"
	FieldLabel            = "label"
	FieldDurationMs       = "duration_ms"
	FieldUpgradeID        = "upgrade_id"
	FieldBranchID         = "branch_id"
	FieldReducedIntensity = "reduced_intensity"

	// Response fields
	FieldAccepted      = "accepted"
	FieldEffects       = "effects"
	FieldState         = "state"
	FieldBranchOptions = "branch_options"

	// Upper bound of a modifier granted through the API
	MaxGrantDurationMs = 24 * 60 * 60 * 1000

	// Largest click count a jump may target
	MaxJumpTarget = 1 << 40
)
