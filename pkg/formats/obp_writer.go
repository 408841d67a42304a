package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteOBP serializes an OBP model. Each bone writes its positions and UVs
// once per vertex and one triangle face per three indices. Faces are written
// so that ParseOBP's winding reversal yields the stored index order.
func WriteOBP(w io.Writer, obp *OBP, header ...string) error {
	bw := bufio.NewWriter(w)

	for _, h := range header {
		fmt.Fprintf(bw, "# %s\n", h)
	}

	for _, bone := range obp.Bones {
		fmt.Fprintf(bw, "\nb %s %s %s %s\n", nameOrUnnamed(bone.Name),
			fmtFloat(bone.Pivot[0]), fmtFloat(bone.Pivot[1]), fmtFloat(bone.Pivot[2]))
		for _, p := range bone.Positions {
			fmt.Fprintf(bw, "v %s %s %s\n", fmtFloat(p[0]), fmtFloat(p[1]), fmtFloat(p[2]))
		}
		for i := range bone.Positions {
			var uv [2]float32
			if i < len(bone.UVs) {
				uv = bone.UVs[i]
			}
			fmt.Fprintf(bw, "vt %s %s\n", fmtFloat(uv[0]), fmtFloat(uv[1]))
		}
		for i := 0; i+2 < len(bone.Indices); i += 3 {
			a, b, c := bone.Indices[i]+1, bone.Indices[i+1]+1, bone.Indices[i+2]+1
			// ParseOBP emits (0,2,1), so write the second and third corners swapped.
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, c, c, b, b)
		}
	}

	for _, anim := range obp.Animations {
		loop := 0
		if anim.Loop {
			loop = 1
		}
		fmt.Fprintf(bw, "\nanim %s %s %d\n", nameOrUnnamed(anim.Name), fmtFloat(anim.Duration), loop)
		for _, ch := range anim.Channels {
			for _, k := range ch.Rotation {
				fmt.Fprintf(bw, "key %s %s %s %s %s\n", fmtFloat(k.Time), nameOrUnnamed(ch.Bone),
					fmtFloat(k.Value[0]), fmtFloat(k.Value[1]), fmtFloat(k.Value[2]))
			}
		}
	}

	return bw.Flush()
}

func fmtFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func nameOrUnnamed(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}
