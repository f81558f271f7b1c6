package services

import (
	"testing"

	"github.com/ngtkana/senseki-db/models"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }

func resp(v models.MatchResult) *models.MatchResult { return &v }

func TestApplyMatchPatchNilFieldsUntouched(t *testing.T) {
	comment := "崖際で事故"
	m := models.Match{
		ID:                  4,
		SessionID:           1,
		CharacterID:         3,
		OpponentCharacterID: 7,
		Result:              models.ResultWin,
		MatchOrder:          2,
		Comment:             &comment,
	}
	before := m

	applyMatchPatch(&m, models.UpdateMatchRequest{})
	assert.Equal(t, before, m)
}

func TestApplyMatchPatchFieldByField(t *testing.T) {
	m := models.Match{
		SessionID:           1,
		CharacterID:         3,
		OpponentCharacterID: 7,
		Result:              models.ResultWin,
		MatchOrder:          2,
	}

	applyMatchPatch(&m, models.UpdateMatchRequest{Result: resp(models.ResultLoss)})
	assert.Equal(t, models.ResultLoss, m.Result)
	assert.Equal(t, 3, m.CharacterID, "untouched fields keep their values")

	applyMatchPatch(&m, models.UpdateMatchRequest{
		CharacterID:         intp(12),
		OpponentCharacterID: intp(13),
	})
	assert.Equal(t, 12, m.CharacterID)
	assert.Equal(t, 13, m.OpponentCharacterID)

	applyMatchPatch(&m, models.UpdateMatchRequest{Comment: strp("上スマ警戒")})
	if assert.NotNil(t, m.Comment) {
		assert.Equal(t, "上スマ警戒", *m.Comment)
	}

	// patches never move a match within its session
	assert.Equal(t, 1, m.SessionID)
	assert.Equal(t, 2, m.MatchOrder)
}
