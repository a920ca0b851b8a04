package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertiesFloat(t *testing.T) {
	p := Properties{"grid_code": 3.0, "RATE": "82.5", "blank": "", "text": "abc"}

	assert.Equal(t, 3.0, p.Float("grid_code", 0))
	assert.Equal(t, 3.0, p.Float("GRID_CODE", 0))
	assert.Equal(t, 82.5, p.Float("rate", 0))
	assert.Equal(t, 7.0, p.Float("missing", 7))
	assert.Equal(t, 7.0, p.Float("text", 7))
	assert.Equal(t, 7.0, p.Float("blank", 7))
}

func TestPropertiesInt(t *testing.T) {
	p := Properties{"grade": 2.0, "SCORE": "95", "frac": "81.7"}

	assert.Equal(t, 2, p.Int("grade", 1))
	assert.Equal(t, 95, p.Int("score", 0))
	assert.Equal(t, 81, p.Int("frac", 0))
	assert.Equal(t, 1, p.Int("missing", 1))
}

func TestPropertiesString(t *testing.T) {
	p := Properties{"sgg_nm": "Suwon-si", "pad": "  Ansan-si  ", "empty": "   ", "num": 4.0}

	assert.Equal(t, "Suwon-si", p.String("SGG_NM", ""))
	assert.Equal(t, "Ansan-si", p.String("pad", ""))
	assert.Equal(t, "d", p.String("empty", "d"))
	assert.Equal(t, "d", p.String("num", "d"))
	assert.Equal(t, "d", p.String("missing", "d"))
}

func TestPropertiesNilValue(t *testing.T) {
	p := Properties{"grade": nil}
	assert.Equal(t, 1, p.Int("grade", 1))
	assert.Equal(t, 0.5, p.Float("grade", 0.5))
	assert.Equal(t, "d", p.String("grade", "d"))
}
