package core

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	resourceWalltime = "walltime"
	resourceSelect   = "select"
	selectMem        = "mem"
	selectNcpus      = "ncpus"
	selectNgpus      = "ngpus"
)

var walltimeRe = regexp.MustCompile(`^[0-9]+:[0-9]{2}:[0-9]{2}$`)

// ParseWalltime validates an hours:minutes:seconds limit
func ParseWalltime(req string) (string, error) {
	if !walltimeRe.MatchString(req) {
		return "", errors.New("invalid walltime request: " + req)
	}
	return req, nil
}

// ParseMem decodes a PBS memory request (16gb, 512mb, ...) into whole
// gigabytes, rounding up
func ParseMem(req string) (mem int, err error) {
	re := regexp.MustCompile("^[0-9]+")
	te := regexp.MustCompile("(?i)(kb|mb|gb|tb)$")
	if match := re.FindString(req); len(match) > 0 {
		if base, perr := strconv.ParseInt(match, 10, 64); perr == nil {
			var bytes int64
			switch strings.ToLower(te.FindString(req)) {
			case "kb":
				bytes = base * 1024
			case "mb":
				bytes = base * 1024 * 1024
			case "tb":
				bytes = base * 1024 * 1024 * 1024 * 1024
			case "gb", "":
				bytes = base * 1024 * 1024 * 1024
			}
			mem = int(math.Ceil(float64(bytes) / float64(1024*1024*1024)))
			return
		}
	}
	err = errors.New("invalid mem request: " + req)
	return
}

// String renders the spec as a -l select chunk
// (1:mem=16gb:ncpus=8:ngpus=1)
func (s SelectSpec) String() string {
	parts := []string{strconv.Itoa(s.Nodes)}
	if len(s.Mem) > 0 {
		parts = append(parts, selectMem+"="+s.Mem)
	}
	if s.CPUs > 0 {
		parts = append(parts, selectNcpus+"="+strconv.Itoa(s.CPUs))
	}
	if s.GPUs > 0 {
		parts = append(parts, selectNgpus+"="+strconv.Itoa(s.GPUs))
	}
	return strings.Join(parts, ":")
}

// ParseSelect decodes a select statement back into a SelectSpec. The
// leading chunk is the node count; the rest are key=value pairs. Unknown
// pairs are discarded.
func ParseSelect(req string) (SelectSpec, error) {
	spec := SelectSpec{Nodes: 1}
	split := strings.Split(req, ":")
	if nodes, err := strconv.Atoi(split[0]); err == nil {
		if nodes < 1 {
			return SelectSpec{}, errors.New("invalid node count: " + split[0])
		}
		spec.Nodes = nodes
		split = split[1:]
	}
	for _, chunk := range split {
		pair := strings.SplitN(chunk, "=", 2)
		if len(pair) != 2 {
			return SelectSpec{}, errors.New("invalid select chunk: " + chunk)
		}
		switch pair[0] {
		case selectMem:
			if _, err := ParseMem(pair[1]); err != nil {
				return SelectSpec{}, err
			}
			spec.Mem = pair[1]
		case selectNcpus:
			if cpus, err := strconv.Atoi(pair[1]); err == nil {
				spec.CPUs = cpus
			} else {
				return SelectSpec{}, errors.New("invalid ncpus request: " + pair[1])
			}
		case selectNgpus:
			if gpus, err := strconv.Atoi(pair[1]); err == nil {
				spec.GPUs = gpus
			} else {
				return SelectSpec{}, errors.New("invalid ngpus request: " + pair[1])
			}
		}
	}
	return spec, nil
}
