package blocks

import "errors"

// Configuration errors are fatal at game creation; no partial game state
// is ever returned alongside one.
var ErrNoPieces = errors.New("blocks: piece catalog is empty")

// Validation errors occur at piece construction time.
var (
	ErrInvalidMatrix = errors.New("blocks: invalid piece matrix")
	ErrInvalidPiece  = errors.New("blocks: invalid piece definition")
)

// Capability errors report a transform forbidden by the piece's flags.
// Callers may treat them as no-ops or propagate them. Gameplay
// rejections (blocked moves, rotations, placements) are boolean returns,
// never errors.
var (
	ErrRotateNotAllowed = errors.New("blocks: piece does not allow rotation")
	ErrMirrorNotAllowed = errors.New("blocks: piece does not allow mirroring")
)
