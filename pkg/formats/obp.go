// Package formats provides parsers for the voxelcraft asset formats.
// OBP ("OBJ with pivots") line format parser.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// OBPBone is one bone of an OBP model as an indexed triangle mesh. Every
// face corner owns its vertex, so Positions and UVs are parallel.
type OBPBone struct {
	Name      string
	Pivot     [3]float32
	Positions [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

// OBP is a parsed OBP model.
type OBP struct {
	Bones      []OBPBone
	Animations []*Animation // The first clip drives playback
	Warnings   []string     // Recovered problems, one per offending record
}

// obpParser holds the line state machine.
type obpParser struct {
	obp  *OBP
	line int

	bone   *OBPBone // Open bone, nil before the first "b"
	rawPos [][3]float32
	rawUV  [][2]float32
	clip   *Animation
}

// ParseOBP parses an OBP model. Records:
//
//	b <name> <px> <py> <pz>        begin bone (flushes the previous one)
//	v <x> <y> <z>                  raw position, 1-based
//	vt <u> <v>                     raw UV, 1-based
//	f <v/vt[/vn]> x3 or x4         face, corners duplicated per face
//	anim <name> <length> <loop>    begin clip
//	key <time> <bone> <rx> <ry> <rz>
//
// Parsing is best-effort: bad references are replaced with zero values and
// reported in Warnings instead of failing the load.
func ParseOBP(data []byte) (*OBP, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyData
	}

	p := &obpParser{obp: &OBP{}}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		p.line++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		p.record(fields[0], fields[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBP: %w", err)
	}

	p.flushBone()
	for _, a := range p.obp.Animations {
		if a.Duration <= 0 {
			a.Duration = 1.0
		}
	}
	return p.obp, nil
}

func (p *obpParser) record(keyword string, args []string) {
	switch keyword {
	case "b":
		p.flushBone()
		p.bone = &OBPBone{Name: truncateName(field(args, 0))}
		p.bone.Pivot = [3]float32{floatField(args, 1), floatField(args, 2), floatField(args, 3)}
		p.rawPos = p.rawPos[:0]
		p.rawUV = p.rawUV[:0]

	case "vt":
		if p.bone == nil {
			return
		}
		p.rawUV = append(p.rawUV, [2]float32{floatField(args, 0), floatField(args, 1)})

	case "v":
		if p.bone == nil {
			return
		}
		p.rawPos = append(p.rawPos, [3]float32{floatField(args, 0), floatField(args, 1), floatField(args, 2)})

	case "f":
		if p.bone == nil {
			return
		}
		p.face(args)

	case "anim":
		loop, _ := strconv.Atoi(field(args, 2))
		p.clip = &Animation{
			Name:     truncateName(field(args, 0)),
			Duration: floatField(args, 1),
			Loop:     loop != 0,
		}
		p.obp.Animations = append(p.obp.Animations, p.clip)

	case "key":
		if p.clip == nil {
			return
		}
		ch := p.clip.channelFor(truncateName(field(args, 1)))
		ch.Rotation = append(ch.Rotation, Keyframe{
			Time:  floatField(args, 0),
			Value: [3]float32{floatField(args, 2), floatField(args, 3), floatField(args, 4)},
		})

	case "vn", "o", "g", "s", "usemtl", "mtllib":
		// Wavefront records with no meaning here

	default:
		p.warn("unknown record %q", keyword)
	}
}

// face duplicates each corner's position and UV and emits triangles with
// reversed winding: (0,2,1) and, for quads, (0,3,2).
func (p *obpParser) face(args []string) {
	var corners [4]uint32
	start := len(p.bone.Positions)
	n := 0
	for _, tok := range args {
		if n == 4 {
			break
		}
		vi, ti, ok := parseFaceCorner(tok)
		if !ok {
			continue
		}

		var pos [3]float32
		if vi >= 1 && int(vi) <= len(p.rawPos) {
			pos = p.rawPos[vi-1]
		} else {
			p.warn("vertex index %d out of range (%d positions)", vi, len(p.rawPos))
		}
		var uv [2]float32
		if ti >= 1 && int(ti) <= len(p.rawUV) {
			uv = p.rawUV[ti-1]
		} else {
			p.warn("vt index %d out of range (%d UVs)", ti, len(p.rawUV))
		}

		corners[n] = uint32(len(p.bone.Positions))
		p.bone.Positions = append(p.bone.Positions, pos)
		p.bone.UVs = append(p.bone.UVs, uv)
		n++
	}

	if n < 3 {
		p.warn("face with %d corners ignored", n)
		p.bone.Positions = p.bone.Positions[:start]
		p.bone.UVs = p.bone.UVs[:start]
		return
	}
	p.bone.Indices = append(p.bone.Indices, corners[0], corners[2], corners[1])
	if n == 4 {
		p.bone.Indices = append(p.bone.Indices, corners[0], corners[3], corners[2])
	}
}

func (p *obpParser) flushBone() {
	if p.bone == nil {
		return
	}
	p.obp.Bones = append(p.obp.Bones, *p.bone)
	p.bone = nil
}

func (p *obpParser) warn(format string, args ...any) {
	p.obp.Warnings = append(p.obp.Warnings, fmt.Sprintf("line %d: ", p.line)+fmt.Sprintf(format, args...))
}

// parseFaceCorner parses "v/vt" or "v/vt/vn".
func parseFaceCorner(tok string) (v, vt uint32, ok bool) {
	parts := strings.Split(tok, "/")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, false
	}
	a, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return uint32(a), uint32(b), true
}

func field(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func floatField(args []string, i int) float32 {
	f, err := strconv.ParseFloat(field(args, i), 32)
	if err != nil {
		return 0
	}
	return float32(f)
}
