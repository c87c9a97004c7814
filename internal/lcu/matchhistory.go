package lcu

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// FetchMatchHistory pulls up to count recent games for puuid, inclusive
// of the upstream's end index, and returns the raw per-game JSON bodies
// found under games.games[] — callers normalize each element independently
// so one malformed game never fails the whole fetch.
func (t *Transport) FetchMatchHistory(ctx context.Context, puuid string, count int) ([][]byte, error) {
	if count <= 0 {
		count = 20
	}
	path := fmt.Sprintf("/lol-match-history/v1/products/lol/%s/matches?begIndex=0&endIndex=%d", puuid, count-1)
	raw, err := t.CallRaw(ctx, "GET", path)
	if err != nil {
		return nil, err
	}

	games := gjson.GetBytes(raw, "games.games").Array()
	out := make([][]byte, 0, len(games))
	for _, g := range games {
		out = append(out, []byte(g.Raw))
	}
	return out, nil
}
