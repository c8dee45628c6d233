package codec

import "encoding/json"

// Validate reports whether raw is a well-formed export document.
func Validate(raw []byte) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return validate(v)
}

// validate applies the shape rules to a generically decoded document.
// Extra fields are allowed everywhere.
func validate(v any) bool {
	doc, ok := v.(map[string]any)
	if !ok {
		return false
	}
	if !isString(doc["version"]) || !isString(doc["exportedAt"]) || !isString(doc["originalUrl"]) {
		return false
	}

	post, ok := doc["post"].(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{"id", "title", "author", "subreddit"} {
		if !isString(post[key]) {
			return false
		}
	}
	if !isNumber(post["created_utc"]) {
		return false
	}

	comments, ok := doc["comments"].([]any)
	if !ok {
		return false
	}
	for _, item := range comments {
		c, ok := item.(map[string]any)
		if !ok {
			return false
		}
		if !isString(c["id"]) || !isString(c["author"]) || !isString(c["body"]) {
			return false
		}
	}

	meta, ok := doc["metadata"].(map[string]any)
	if !ok {
		return false
	}
	return isNumber(meta["totalComments"]) && isNumber(meta["exportTimestamp"])
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNumber(v any) bool {
	_, ok := v.(float64)
	return ok
}
