package lifecycle

import (
	"fmt"

	"solireserve/internal/domains/process/model"

	"github.com/jaevor/go-nanoid"
)

const (
	numberAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	numberLength   = 10
)

var stagePrefixes = map[model.Stage]string{
	model.StageVoucher:       "BH-",
	model.StagePurchaseOrder: "BC-",
	model.StageInvoice:       "FA-",
}

// NumberGenerator issues document numbers for a stage.
type NumberGenerator interface {
	Next(stage model.Stage) string
}

type nanoidNumbers struct {
	generate func() string
}

// NewNumberGenerator returns a generator producing numbers like BH-7K2M9QX4PD.
func NewNumberGenerator() (NumberGenerator, error) {
	generate, err := nanoid.CustomASCII(numberAlphabet, numberLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create number generator: %w", err)
	}

	return &nanoidNumbers{generate: generate}, nil
}

func (n *nanoidNumbers) Next(stage model.Stage) string {
	return stagePrefixes[stage] + n.generate()
}
