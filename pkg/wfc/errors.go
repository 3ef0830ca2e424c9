package wfc

import "errors"

var (
	ErrInvalidSize       = errors.New("wfc: width and height must be positive")
	ErrEmptyAlphabet     = errors.New("wfc: tile alphabet is empty")
	ErrIdentityRange     = errors.New("wfc: tile identity outside alphabet range")
	ErrDuplicateIdentity = errors.New("wfc: tile identity is not unique")
	ErrUnknownTile       = errors.New("wfc: tile is not a member of the alphabet")
	ErrNegativeWeight    = errors.New("wfc: compatibility weight is negative")
	ErrInvalidRadius     = errors.New("wfc: neighborhood radius must be at least 1")
)
