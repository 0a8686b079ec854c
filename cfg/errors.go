package cfg

import "github.com/pkg/errors"

// ErrInterfaceContract is returned when a host-supplied Instruction's
// Uses or Defines implementation misbehaves (panics) instead of
// returning a variable slice. It always indicates a broken adapter, not
// a runtime condition tied to program input.
var ErrInterfaceContract = errors.New("cfg: Uses/Defines violated interface contract")
