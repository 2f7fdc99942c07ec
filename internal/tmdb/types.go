package tmdb

// SearchResult represents a single TMDB movie search match.
type SearchResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
}

// SearchResponse models the TMDB paginated search response.
type SearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Genre is a TMDB genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is one billed performer. Order follows TMDB billing.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// Credits is the credits sub-resource of a movie.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// MovieDetails is the movie detail payload with credits appended.
type MovieDetails struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	PosterPath  string  `json:"poster_path"`
	Genres      []Genre `json:"genres"`
	Credits     Credits `json:"credits"`
}

// DirectorJob is the crew job label TMDB uses for directors.
const DirectorJob = "Director"

// Directors returns crew members whose job is exactly DirectorJob.
func (d *MovieDetails) Directors() []CrewMember {
	if d == nil {
		return nil
	}
	var out []CrewMember
	for _, member := range d.Credits.Crew {
		if member.Job == DirectorJob {
			out = append(out, member)
		}
	}
	return out
}

// TopCast returns at most n cast members in TMDB billing order.
func (d *MovieDetails) TopCast(n int) []CastMember {
	if d == nil || n <= 0 {
		return nil
	}
	if len(d.Credits.Cast) <= n {
		return d.Credits.Cast
	}
	return d.Credits.Cast[:n]
}
