package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"dota-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

// Client talks to the OpenDota REST API. Responses are raw provider shapes;
// the normalize package turns them into domain values.
type Client struct {
	baseURL     string
	apiKey      string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	RemainingMinute int       `json:"remaining_minute"`
	RemainingMonth  int       `json:"remaining_month"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.OpenDotaURL,
		apiKey:  cfg.OpenDotaAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			RemainingMinute: 60,
			UpdatedAt:       time.Now(),
		},
	}
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if minute := string(resp.Header.Peek("X-Rate-Limit-Remaining-Minute")); minute != "" {
		if val, err := strconv.Atoi(minute); err == nil {
			c.rateLimit.RemainingMinute = val
		}
	}
	if month := string(resp.Header.Peek("X-Rate-Limit-Remaining-Month")); month != "" {
		if val, err := strconv.Atoi(month); err == nil {
			c.rateLimit.RemainingMonth = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *Client) GetMatch(ctx context.Context, matchID int64) (*MatchResponse, error) {
	url := fmt.Sprintf("%s/api/matches/%d", c.baseURL, matchID)
	return doRequest[MatchResponse](ctx, c, url)
}

func (c *Client) GetHeroes(ctx context.Context) ([]HeroResponse, error) {
	url := fmt.Sprintf("%s/api/heroes", c.baseURL)
	heroes, err := doRequest[[]HeroResponse](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *heroes, nil
}

func (c *Client) GetTeam(ctx context.Context, teamID int64) (*TeamResponse, error) {
	url := fmt.Sprintf("%s/api/teams/%d", c.baseURL, teamID)
	return doRequest[TeamResponse](ctx, c, url)
}

func (c *Client) GetTeamMatches(ctx context.Context, teamID int64) ([]TeamMatchResponse, error) {
	url := fmt.Sprintf("%s/api/teams/%d/matches", c.baseURL, teamID)
	matches, err := doRequest[[]TeamMatchResponse](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *matches, nil
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	requestURL := url
	if client.apiKey != "" {
		requestURL = fmt.Sprintf("%s?api_key=%s", url, client.apiKey)
	}
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, classifyTransportError(url, err)
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, classifyTransportError(url, err)
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &ProviderError{Status: resp.StatusCode(), URL: url}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return &result, nil
}

func classifyTransportError(url string, err error) error {
	if err == fasthttp.ErrTimeout || err == context.DeadlineExceeded {
		return &TimeoutError{URL: url, Err: err}
	}
	return &NetworkError{URL: url, Err: err}
}

// MatchResponse is the raw /api/matches/{id} payload. Optional fields stay
// pointers so the normalizer can tell absent from present-but-zero.
type MatchResponse struct {
	MatchID        *int64           `json:"match_id"`
	Duration       *int             `json:"duration"`
	StartTime      *int64           `json:"start_time"`
	RadiantWin     *bool            `json:"radiant_win"`
	RadiantName    string           `json:"radiant_name"`
	DireName       string           `json:"dire_name"`
	RadiantTeamID  int64            `json:"radiant_team_id"`
	DireTeamID     int64            `json:"dire_team_id"`
	Players        []MatchPlayer    `json:"players"`
	PicksBans      []PickBan        `json:"picks_bans"`
	RadiantGoldAdv []int            `json:"radiant_gold_adv"`
	RadiantXPAdv   []int            `json:"radiant_xp_adv"`
	Objectives     []MatchObjective `json:"objectives"`
}

type MatchPlayer struct {
	PlayerSlot *int  `json:"player_slot"`
	IsRadiant  *bool `json:"isRadiant"`
	HeroID     *int  `json:"hero_id"`
	Kills      *int  `json:"kills"`
	Deaths     *int  `json:"deaths"`
	Assists    *int  `json:"assists"`
	GoldPerMin *int  `json:"gold_per_min"`
	XPPerMin   *int  `json:"xp_per_min"`
	NetWorth   *int  `json:"net_worth"`
	LastHits   *int  `json:"last_hits"`
	Denies     *int  `json:"denies"`
	Item0      *int  `json:"item_0"`
	Item1      *int  `json:"item_1"`
	Item2      *int  `json:"item_2"`
	Item3      *int  `json:"item_3"`
	Item4      *int  `json:"item_4"`
	Item5      *int  `json:"item_5"`
}

type PickBan struct {
	IsPick bool `json:"is_pick"`
	HeroID int  `json:"hero_id"`
	Team   int  `json:"team"` // 0 radiant, 1 dire
	Order  int  `json:"order"`
}

type MatchObjective struct {
	Type       string `json:"type"`
	Time       int    `json:"time"`
	PlayerSlot *int   `json:"player_slot"`
	Team       *int   `json:"team"`
}

// HeroResponse is one entry of the raw /api/heroes payload.
type HeroResponse struct {
	ID            *int     `json:"id"`
	Name          string   `json:"name"`
	LocalizedName *string  `json:"localized_name"`
	PrimaryAttr   string   `json:"primary_attr"`
	AttackType    string   `json:"attack_type"`
	Roles         []string `json:"roles"`
	Legs          int      `json:"legs"`
	Img           string   `json:"img"`
}

// TeamResponse is the raw /api/teams/{id} payload.
type TeamResponse struct {
	TeamID  *int64   `json:"team_id"`
	Rating  *float64 `json:"rating"`
	Wins    int      `json:"wins"`
	Losses  int      `json:"losses"`
	Name    *string  `json:"name"`
	Tag     string   `json:"tag"`
	LogoURL string   `json:"logo_url"`
}

// TeamMatchResponse is one entry of the raw /api/teams/{id}/matches payload.
type TeamMatchResponse struct {
	MatchID          *int64  `json:"match_id"`
	Radiant          *bool   `json:"radiant"`
	RadiantWin       *bool   `json:"radiant_win"`
	Duration         int     `json:"duration"`
	StartTime        int64   `json:"start_time"`
	OpposingTeamID   int64   `json:"opposing_team_id"`
	OpposingTeamName *string `json:"opposing_team_name"`
	LeagueName       string  `json:"league_name"`
}
