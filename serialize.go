package triface

import (
	"encoding/binary"
	"fmt"
	"io"
)

const modelVersion int32 = 1

// Encode writes p to w in the versioned little-endian binary format:
// version, initial_shape, forests, indices. The output is byte-identical
// across runs for an identical predictor, so two Predictor values trained
// from the same seed serialise to the same bytes.
func (p *Predictor) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, modelVersion); err != nil {
		return fmt.Errorf("triface: encode version: %w", err)
	}
	if err := writeFloat32s(w, p.initialShape); err != nil {
		return fmt.Errorf("triface: encode initial shape: %w", err)
	}

	if err := writeUint32(w, uint32(len(p.forests))); err != nil {
		return fmt.Errorf("triface: encode cascade count: %w", err)
	}
	for c, forest := range p.forests {
		if err := writeUint32(w, uint32(len(forest))); err != nil {
			return fmt.Errorf("triface: encode forest %d count: %w", c, err)
		}
		for t := range forest {
			if err := forest[t].encode(w); err != nil {
				return fmt.Errorf("triface: encode tree %d/%d: %w", c, t, err)
			}
		}
	}

	if err := writeUint32(w, uint32(len(p.indices))); err != nil {
		return fmt.Errorf("triface: encode index count: %w", err)
	}
	for c := range p.indices {
		if err := p.indices[c].encode(w); err != nil {
			return fmt.Errorf("triface: encode index %d: %w", c, err)
		}
	}
	return nil
}

// Decode reads a Predictor previously written by Encode. It fails with
// ErrUnsupportedModelVersion if the stream's version tag isn't 1, and
// never returns a partially populated Predictor: on any error the first
// return value is nil.
func Decode(r io.Reader) (*Predictor, error) {
	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("triface: decode version: %w", err)
	}
	if version != modelVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedModelVersion, version, modelVersion)
	}

	initialShape, err := readFloat32s(r)
	if err != nil {
		return nil, fmt.Errorf("triface: decode initial shape: %w", err)
	}

	numCascades, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("triface: decode cascade count: %w", err)
	}
	forests := make([]Forest, numCascades)
	for c := range forests {
		numTrees, err := readUint32(r)
		if err != nil {
			return nil, fmt.Errorf("triface: decode forest %d count: %w", c, err)
		}
		forest := make(Forest, numTrees)
		for t := range forest {
			tree, err := decodeTree(r)
			if err != nil {
				return nil, fmt.Errorf("triface: decode tree %d/%d: %w", c, t, err)
			}
			forest[t] = tree
		}
		forests[c] = forest
	}

	numIndices, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("triface: decode index count: %w", err)
	}
	indices := make([]TripletIndex, numIndices)
	for c := range indices {
		idx, err := decodeTripletIndex(r)
		if err != nil {
			return nil, fmt.Errorf("triface: decode index %d: %w", c, err)
		}
		indices[c] = idx
	}

	if len(forests) != len(indices) {
		return nil, fmt.Errorf("triface: decode: forests/indices length mismatch (%d != %d)", len(forests), len(indices))
	}

	return &Predictor{
		initialShape: Shape(initialShape),
		forests:      forests,
		indices:      indices,
	}, nil
}

func (t *RegressionTree) encode(w io.Writer) error {
	if err := writeUint32(w, uint32(len(t.Splits))); err != nil {
		return err
	}
	for _, s := range t.Splits {
		if err := writeUint32(w, s.I); err != nil {
			return err
		}
		if err := writeUint32(w, s.J); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, s.Thresh); err != nil {
			return err
		}
	}

	if err := writeUint32(w, uint32(len(t.Leaves))); err != nil {
		return err
	}
	for _, leaf := range t.Leaves {
		if err := writeFloat32s(w, leaf); err != nil {
			return err
		}
	}
	return nil
}

func decodeTree(r io.Reader) (RegressionTree, error) {
	numSplits, err := readUint32(r)
	if err != nil {
		return RegressionTree{}, err
	}
	splits := make([]SplitNode, numSplits)
	for i := range splits {
		a, err := readUint32(r)
		if err != nil {
			return RegressionTree{}, err
		}
		b, err := readUint32(r)
		if err != nil {
			return RegressionTree{}, err
		}
		var thresh float32
		if err := binary.Read(r, binary.LittleEndian, &thresh); err != nil {
			return RegressionTree{}, err
		}
		splits[i] = SplitNode{I: a, J: b, Thresh: thresh}
	}

	numLeaves, err := readUint32(r)
	if err != nil {
		return RegressionTree{}, err
	}
	leaves := make([]Shape, numLeaves)
	for i := range leaves {
		leaf, err := readFloat32s(r)
		if err != nil {
			return RegressionTree{}, err
		}
		leaves[i] = Shape(leaf)
	}

	return RegressionTree{Splits: splits, Leaves: leaves}, nil
}

// encode writes the triplet index as five parallel columns, anchor_a/b/c
// then ratio_a/b, matching the reference layout rather than an
// array-of-structs: this keeps the on-disk format stable even if
// TripletEntry's in-memory field order ever changes.
func (idx TripletIndex) encode(w io.Writer) error {
	f := len(idx)
	if err := writeUint32(w, uint32(f)); err != nil {
		return err
	}
	for _, e := range idx {
		if err := writeUint32(w, e.A); err != nil {
			return err
		}
	}
	for _, e := range idx {
		if err := writeUint32(w, e.B); err != nil {
			return err
		}
	}
	for _, e := range idx {
		if err := writeUint32(w, e.C); err != nil {
			return err
		}
	}
	for _, e := range idx {
		if err := binary.Write(w, binary.LittleEndian, e.Alpha); err != nil {
			return err
		}
	}
	for _, e := range idx {
		if err := binary.Write(w, binary.LittleEndian, e.Beta); err != nil {
			return err
		}
	}
	return nil
}

func decodeTripletIndex(r io.Reader) (TripletIndex, error) {
	f, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	idx := make(TripletIndex, f)

	read32 := func(dst func(int, uint32)) error {
		for i := 0; i < int(f); i++ {
			v, err := readUint32(r)
			if err != nil {
				return err
			}
			dst(i, v)
		}
		return nil
	}
	if err := read32(func(i int, v uint32) { idx[i].A = v }); err != nil {
		return nil, err
	}
	if err := read32(func(i int, v uint32) { idx[i].B = v }); err != nil {
		return nil, err
	}
	if err := read32(func(i int, v uint32) { idx[i].C = v }); err != nil {
		return nil, err
	}

	for i := 0; i < int(f); i++ {
		var alpha float64
		if err := binary.Read(r, binary.LittleEndian, &alpha); err != nil {
			return nil, err
		}
		idx[i].Alpha = alpha
	}
	for i := 0; i < int(f); i++ {
		var beta float64
		if err := binary.Read(r, binary.LittleEndian, &beta); err != nil {
			return nil, err
		}
		idx[i].Beta = beta
	}
	return idx, nil
}

func writeUint32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func writeFloat32s(w io.Writer, s []float32) error {
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, s)
}

func readFloat32s(r io.Reader) ([]float32, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	s := make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, s); err != nil {
		return nil, err
	}
	return s, nil
}
