package shorttermmemory

// Usage tracks the tokens consumed by the completions of one conversation.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
	Requests         int   `json:"requests"`
}

// AddUsage adds other to u. A nil other counts as a request without usage data.
func (u *Usage) AddUsage(other *Usage) {
	if other == nil {
		u.Requests++
		return
	}
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
	if other.Requests == 0 {
		u.Requests++
		return
	}
	u.Requests += other.Requests
}
