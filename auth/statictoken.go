package auth

// StaticTokenTable maps pre-shared opaque tokens to usernames. The table is
// fixed at startup; static tokens never expire and are never rotated.
type StaticTokenTable struct {
	tokens map[string]string
}

// NewStaticTokenTable copies the given mapping into an immutable table.
func NewStaticTokenTable(tokens map[string]string) *StaticTokenTable {
	t := make(map[string]string, len(tokens))
	for k, v := range tokens {
		t[k] = v
	}
	return &StaticTokenTable{tokens: t}
}

// Resolve returns the username mapped to the token via exact match.
func (t *StaticTokenTable) Resolve(token string) (string, bool) {
	u, ok := t.tokens[token]
	return u, ok
}

// Len returns the number of configured tokens.
func (t *StaticTokenTable) Len() int { return len(t.tokens) }
