package models

type HNSearchResponse struct {
	Hits []HNHit `json:"hits"`
}

type HNHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	StoryText   string `json:"story_text"`
	URL         string `json:"url"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	CreatedAtI  int64  `json:"created_at_i"`
	Author      string `json:"author"`
}
