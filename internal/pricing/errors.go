package pricing

import (
	"errors"
	"fmt"
)

var errEmptyGrowthTable = errors.New("growth table is empty")

func errDuplicateThreshold(t float64) error {
	return fmt.Errorf("duplicate growth threshold %v", t)
}

func errNonMonotonicGrowth(label string) error {
	return fmt.Errorf("growth bucket %q lowers the surcharge of the bucket below it", label)
}
