package ipmi

import (
	"strconv"
	"strings"
)

// record is a line of `ipmitool sdr type <type>`, eg.:
//
//	Temp             | 0Eh | ok  |  3.1 | 45 degrees C
//	Fan1 RPM         | 30h | ok  |  7.1 | 3600 RPM
//	Exhaust Temp     | 01h | ns  |  7.1 | No Reading
type record struct {
	Name     string
	ID       string
	Status   string
	Entity   string
	Value    float64
	Unit     string
	HasValue bool
}

func parseSDR(out string) []record {
	var records []record
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		r := record{
			Name:   fields[0],
			ID:     fields[1],
			Status: fields[2],
			Entity: fields[3],
		}

		reading := strings.SplitN(fields[4], " ", 2)
		if v, err := strconv.ParseFloat(reading[0], 64); err == nil && len(reading) == 2 {
			r.Value = v
			r.Unit = reading[1]
			r.HasValue = true
		}

		records = append(records, r)
	}
	return records
}
