package vector

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode(t *testing.T) {
	v := []float32{0.1, -0.5, 3.25, 0}

	data := Encode(v)
	assert.Equal(t, len(v)*4, len(data))

	got, err := Decode(data)
	assert.Nil(t, err)
	assert.Equal(t, v, got)
}

func TestDecodeInvalidLength(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.NotNil(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode(nil)
	assert.Nil(t, err)
	assert.Nil(t, got)
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0, 0}
	c := []float32{0, 1, 0}
	d := []float32{-1, 0, 0}

	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity(a, c), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity(a, d), 1e-9)

	// 维度不一致与零向量
	assert.Equal(t, 0.0, CosineSimilarity(a, []float32{1, 0}))
	assert.Equal(t, 0.0, CosineSimilarity(a, []float32{0, 0, 0}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

// 编解码往返不丢失数据

func TestProperty_EncodeDecodeRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(v)) == v", prop.ForAll(
		func(raw []float32) bool {
			data := Encode(raw)
			got, err := Decode(data)
			if err != nil {
				return false
			}
			if len(raw) == 0 {
				return got == nil
			}
			if len(got) != len(raw) {
				return false
			}
			for i := range raw {
				if math.Float32bits(got[i]) != math.Float32bits(raw[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float32Range(-10, 10)),
	))

	properties.TestingRun(t)
}

// 余弦相似度的取值范围为 [-1, 1]

func TestProperty_CosineSimilarityBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("similarity within [-1, 1]", prop.ForAll(
		func(a, b []float32) bool {
			s := CosineSimilarity(a, b)
			return s >= -1.0000001 && s <= 1.0000001
		},
		gen.SliceOfN(8, gen.Float32Range(-10, 10)),
		gen.SliceOfN(8, gen.Float32Range(-10, 10)),
	))

	properties.TestingRun(t)
}
