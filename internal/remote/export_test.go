package remote

// SetToken plants a cached token for id.
func (c *Client) SetToken(id, tok string) { c.remember(id, tok) }
