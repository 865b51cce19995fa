package ufl

import (
	"fmt"
	"strconv"
	"strings"
)

// Repeatable command-line flags. Each occurrence appends one or more
// comma-separated values.

type ArrayStringFlags []string

func (i *ArrayStringFlags) String() string {
	return fmt.Sprintf("%v", *i)
}

func (i *ArrayStringFlags) Set(value string) error {
	*i = append(*i, splitValues(value)...)
	return nil
}

type ArrayIntFlags []int

func (i *ArrayIntFlags) String() string {
	return fmt.Sprintf("%v", *i)
}

func (i *ArrayIntFlags) Set(value string) error {
	for _, s := range splitValues(value) {
		val, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*i = append(*i, val)
	}
	return nil
}

type ArrayFloatFlags []float64

func (i *ArrayFloatFlags) String() string {
	return fmt.Sprintf("%v", *i)
}

func (i *ArrayFloatFlags) Set(value string) error {
	for _, s := range splitValues(value) {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*i = append(*i, val)
	}
	return nil
}

func splitValues(value string) []string {
	var res []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}
