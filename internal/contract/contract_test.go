package contract

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/grindstone/internal/app"
	"github.com/alexanderramin/grindstone/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRequest_Defaults(t *testing.T) {
	var req SessionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"actualDuration":25}`), &req))

	in := req.Input()
	assert.Equal(t, 25, in.ActualDuration)
	assert.Equal(t, int(domain.DifficultyActive), in.Difficulty)
	assert.Equal(t, domain.RecallPerfect, in.RecallAccuracy)
}

func TestSessionRequest_ExplicitRecallKept(t *testing.T) {
	var req SessionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"actualDuration":25,"recallAccuracy":0.7}`), &req))

	// Out-of-set values pass through so the service can reject them.
	assert.Equal(t, 0.7, req.Input().RecallAccuracy)
}

func TestFromLegacy_EmptyListsEncodeAsArrays(t *testing.T) {
	out := FromLegacy(&app.LegacyView{})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"earnedIds":[]`)
	assert.Contains(t, string(data), `"recent":[]`)
}

func TestFromLegacy_EarnedIDsFollowBadges(t *testing.T) {
	out := FromLegacy(&app.LegacyView{
		Badges: []app.BadgeProgress{
			{Badge: domain.BadgeDef{ID: "streak_7"}, Progress: 100, Earned: true},
			{Badge: domain.BadgeDef{ID: "streak_30"}, Progress: 23},
		},
	})
	assert.Equal(t, []string{"streak_7"}, out.EarnedIDs)
	assert.Equal(t, map[string]int{"streak_7": 100, "streak_30": 23}, out.BadgeProgress)
}
