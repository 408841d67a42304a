// obpconv converts a Bedrock block model, and optionally its animation, to
// the flat OBP format.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/voxelcraft/internal/engine/model"
	"github.com/Faultbox/voxelcraft/pkg/formats"
)

func main() {
	animPath := flag.String("anim", "", "Bedrock animation file to convert with the model")
	outPath := flag.String("o", "", "Output file (default: model path with .obp extension)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}

	in := flag.Arg(0)
	out := *outPath
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".obp"
	}

	stats, err := convert(in, *animPath, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Converted %s -> %s (%d bones, %d triangles, %d keys)\n",
		in, out, stats.bones, stats.triangles, stats.keys)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `obpconv - Bedrock JSON to OBP converter

Usage:
  obpconv [-anim file] [-o out] model.json

Examples:
  obpconv data/models/Fan.json
  obpconv -anim data/animations/chest.json -o data/models/Chest.obp data/models/Chest.json`)
}

type convertStats struct {
	bones     int
	triangles int
	keys      int
}

func convert(in, animPath, out string) (convertStats, error) {
	var stats convertStats

	data, err := os.ReadFile(in)
	if err != nil {
		return stats, errors.Wrap(err, "reading model")
	}
	m, err := model.LoadBedrock(data, model.BuildOptions{BlockShape: true})
	if err != nil {
		return stats, errors.Wrapf(err, "parsing %s", in)
	}

	var anim *formats.Animation
	if animPath != "" {
		data, err := os.ReadFile(animPath)
		if err != nil {
			return stats, errors.Wrap(err, "reading animation")
		}
		if anim, err = formats.ParseBedrockAnimation(data); err != nil {
			return stats, errors.Wrapf(err, "parsing %s", animPath)
		}
	}

	obp := m.ToOBP(anim)
	stats.bones = len(obp.Bones)
	for _, b := range obp.Bones {
		stats.triangles += len(b.Indices) / 3
	}
	for _, a := range obp.Animations {
		for _, ch := range a.Channels {
			stats.keys += len(ch.Rotation)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return stats, errors.Wrap(err, "creating output")
	}
	defer f.Close()

	if err := formats.WriteOBP(f, obp, "Converted from Bedrock JSON", "Source: "+filepath.Base(in)); err != nil {
		return stats, errors.Wrapf(err, "writing %s", out)
	}
	return stats, f.Close()
}
