package domain

// TweetURLPrefix is the permalink prefix for tweets.
const TweetURLPrefix = "https://twitter.com/"

// EventPayload is the decoded form of one stream event.
type EventPayload struct {
	Data     *TweetData `json:"data"`
	Includes *Includes  `json:"includes"`
}

// TweetData holds the tweet fields requested from the stream.
type TweetData struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Text      string `json:"text"`
	AuthorID  string `json:"author_id,omitempty"`
}

// Includes holds expanded objects referenced by the tweet.
type Includes struct {
	Users []User `json:"users"`
}

// User is an expanded author object.
type User struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TweetRecord is a normalised tweet ready to be appended to a sink.
type TweetRecord struct {
	URL       string
	Handle    string
	CreatedAt string
	Text      string
}

// TweetURL builds the canonical permalink for a tweet.
func TweetURL(handle, id string) string {
	return TweetURLPrefix + handle + "/status/" + id
}

// Row returns the sink row for the record: url, handle, created_at, text.
func (r TweetRecord) Row() []string {
	return []string{r.URL, r.Handle, r.CreatedAt, r.Text}
}
