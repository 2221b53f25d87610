package genius

import (
	"context"
	"fmt"
	"log"

	"github.com/fortuna/courtside/internal/pbp"
)

// DefaultCompetitions are the competition IDs a bare match ID is probed
// against, in order. The widget keys every match URL by competition, but
// fixture lists only hand out match IDs.
var DefaultCompetitions = []int{37654, 37658, 48039, 48040}

// Ingester fetches and assembles everything a replay needs for one match.
type Ingester struct {
	client       *Client
	parser       *Parser
	competitions []int
}

// NewIngester creates an ingester against the hosted widget.
func NewIngester() *Ingester {
	return NewIngesterWithClient(NewClient(), nil)
}

// NewIngesterWithClient creates an ingester with an explicit client and
// competition list; nil competitions means the defaults.
func NewIngesterWithClient(client *Client, competitions []int) *Ingester {
	if len(competitions) == 0 {
		competitions = DefaultCompetitions
	}
	return &Ingester{
		client:       client,
		parser:       NewParser(),
		competitions: competitions,
	}
}

// FetchMatch probes the competition list until one serves a box score with
// players, then pulls the play-by-play and summary pages for that match.
func (i *Ingester) FetchMatch(ctx context.Context, matchID string) (*pbp.MatchInput, error) {
	for _, comp := range i.competitions {
		in, err := i.fetchFromCompetition(ctx, comp, matchID)
		if err != nil {
			log.Printf("[genius] competition %d has no match %s: %v", comp, matchID, err)
			continue
		}
		log.Printf("[genius] ✓ Match %s found in competition %d: %s vs %s, %d players, %d rows",
			matchID, comp, in.Teams[pbp.SideHome], in.Teams[pbp.SideAway], len(in.Roster), len(in.Events))
		return in, nil
	}
	return nil, fmt.Errorf("match %s not found in any known competition", matchID)
}

// FetchMatchFromCompetition skips the probe for callers that know the
// competition already.
func (i *Ingester) FetchMatchFromCompetition(ctx context.Context, competitionID int, matchID string) (*pbp.MatchInput, error) {
	return i.fetchFromCompetition(ctx, competitionID, matchID)
}

func (i *Ingester) fetchFromCompetition(ctx context.Context, competitionID int, matchID string) (*pbp.MatchInput, error) {
	boxDoc, err := i.client.FetchBoxScore(ctx, competitionID, matchID)
	if err != nil {
		return nil, fmt.Errorf("box score: %w", err)
	}
	box, err := i.parser.ParseBoxScore(boxDoc)
	if err != nil {
		return nil, fmt.Errorf("parse box score: %w", err)
	}
	if len(box.Roster) == 0 {
		return nil, fmt.Errorf("box score has no players")
	}

	pbpDoc, err := i.client.FetchPlayByPlay(ctx, competitionID, matchID)
	if err != nil {
		return nil, fmt.Errorf("play-by-play: %w", err)
	}
	events := i.parser.ParsePlayByPlay(pbpDoc)
	if len(events) == 0 {
		return nil, fmt.Errorf("play-by-play has no rows")
	}

	in := &pbp.MatchInput{
		MatchID:     matchID,
		Category:    box.Category,
		Teams:       box.Teams,
		Roster:      box.Roster,
		Events:      events,
		OfficialBox: box.Official,
	}

	// The summary page is optional; verification degrades without it.
	if sumDoc, err := i.client.FetchSummary(ctx, competitionID, matchID); err != nil {
		log.Printf("[genius] ⚠️  No summary page for match %s: %v", matchID, err)
	} else {
		in.OfficialSummary, in.MatchDate = i.parser.ParseSummary(sumDoc)
	}
	return in, nil
}
