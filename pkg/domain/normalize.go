package domain

// The admin API serves records migrated from an older document store.
// Some payloads still carry the identifier under "_id" instead of "id",
// and social fields (likes, replies) arrive as participant ID arrays.
// Normalization runs exactly once, where a service result enters a
// store; downstream code reads only the canonical ID and the derived
// count fields, never the legacy key or the raw arrays.

// canonicalID prefers the primary key and falls back to the legacy key.
// Calling it on an already-normalized entity is a no-op.
func canonicalID(id, legacy string) string {
	if id != "" {
		return id
	}
	return legacy
}

func NormalizePost(p Post) Post {
	p.ID = canonicalID(p.ID, p.LegacyID)
	p.LikeCount = len(p.Likes)
	p.DislikeCount = len(p.Dislikes)
	p.ReportCount = len(p.Reports)
	return p
}

func NormalizeBlog(b Blog) Blog {
	b.ID = canonicalID(b.ID, b.LegacyID)
	b.LikesCount = len(b.Likes)
	return b
}

func NormalizeComment(c Comment) Comment {
	c.ID = canonicalID(c.ID, c.LegacyID)
	c.LikeCount = len(c.Likes)
	c.ReplyCount = len(c.Replies)
	return c
}

func NormalizeEvent(e Event) Event {
	e.ID = canonicalID(e.ID, e.LegacyID)
	e.AttendeeCount = len(e.Attendees)
	return e
}

func NormalizeUser(u User) User {
	u.ID = canonicalID(u.ID, u.LegacyID)
	return u
}

func NormalizePendingDoctor(d PendingDoctor) PendingDoctor {
	d.ID = canonicalID(d.ID, d.LegacyID)
	return d
}
