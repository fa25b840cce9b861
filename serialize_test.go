package triface

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestPredictor() *Predictor {
	initial := Shape{0.1, 0.2, 0.3, 0.4}
	forests := []Forest{
		{
			RegressionTree{
				Splits: []SplitNode{{I: 0, J: 1, Thresh: 0.5}},
				Leaves: []Shape{{0.01, 0.01, 0, 0}, {-0.01, 0, 0, 0.02}},
			},
		},
	}
	indices := []TripletIndex{
		{
			{A: 0, B: 1, C: 0, Alpha: 0.1, Beta: 0.2},
		},
	}
	return NewPredictor(initial, forests, indices)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	p := buildTestPredictor()

	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, p.initialShape, decoded.initialShape)
	assert.Equal(t, p.forests, decoded.forests)
	assert.Equal(t, p.indices, decoded.indices)
}

func TestEncode_IsByteIdenticalAcrossRuns(t *testing.T) {
	p1 := buildTestPredictor()
	p2 := buildTestPredictor()

	var buf1, buf2 bytes.Buffer
	require.NoError(t, p1.Encode(&buf1))
	require.NoError(t, p2.Encode(&buf2))

	assert.Equal(t, buf1.Bytes(), buf2.Bytes())
}

func TestDecode_RejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(2)))

	_, err := Decode(&buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedModelVersion))
}
