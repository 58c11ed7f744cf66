package posts

import (
	"strings"

	"github.com/mysocialapp/backend/internal/placeholder"
)

const UnknownUser = "Unknown User"

// FilterByTitle keeps posts whose title contains search,
// case-insensitively. Empty search keeps everything.
func FilterByTitle(allPosts []placeholder.Post, search string) []placeholder.Post {
	if search == "" {
		return allPosts
	}

	search = strings.ToLower(search)
	var filtered []placeholder.Post
	for _, p := range allPosts {
		if strings.Contains(strings.ToLower(p.Title), search) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// OwnedBy keeps posts belonging to the given user.
func OwnedBy(allPosts []placeholder.Post, userID int) []placeholder.Post {
	var owned []placeholder.Post
	for _, p := range allPosts {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	return owned
}

// CommentsForPosts retains comments whose post id is in the given posts
// set, preserving the original comment order. A set-membership join,
// not a per-post query.
func CommentsForPosts(comments []placeholder.Comment, forPosts []placeholder.Post) []placeholder.Comment {
	postIDs := make(map[int]bool, len(forPosts))
	for _, p := range forPosts {
		postIDs[p.ID] = true
	}

	var retained []placeholder.Comment
	for _, c := range comments {
		if postIDs[c.PostID] {
			retained = append(retained, c)
		}
	}
	return retained
}

// UsernameByID resolves a display username via a reverse lookup across
// the full user collection.
func UsernameByID(users []placeholder.User, userID int) string {
	for _, u := range users {
		if u.ID == userID {
			return u.Username
		}
	}
	return UnknownUser
}

// UsernameByEmail resolves a display username by exact email match.
func UsernameByEmail(users []placeholder.User, email string) string {
	for _, u := range users {
		if u.Email == email {
			return u.Username
		}
	}
	return UnknownUser
}
