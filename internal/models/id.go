package models

import (
	"math"
	"strconv"
)

// MaxID is the largest identifier a SERIAL column can hold
const MaxID = math.MaxInt32

// ParseID parses a record identifier taken from a path or query value
func ParseID(raw string) (int, bool) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int(id), true
}

func validID(id int) bool {
	return id > 0 && id <= MaxID
}
