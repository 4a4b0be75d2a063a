package codec

import (
	"qgenenc/circuit"
	"qgenenc/render"
)

// ExportTo compiles seq and writes it to filename, drawn as Pauli-string
// exponentials with the controls folded into the generators. The extension
// selects the format (see render.Formats).
func ExportTo(seq circuit.Sequence, filename string) error {
	return render.Export(Compile(seq), filename, render.Options{
		ExpandGenerators:  true,
		DecomposeControls: true,
	})
}
