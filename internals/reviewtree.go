package internals

import (
	"restaurant-booking-server/model"
)

// BuildReviewThreads attaches to each root its reply tree. replies may be the
// whole review set of the restaurant; flagged reviews are left out together
// with everything below them.
func BuildReviewThreads(roots []model.Review, replies []model.Review, username func(userID int) string) []model.ReviewNode {
	// parent -> children index, built once
	children := make(map[int][]model.Review)
	for _, review := range replies {
		if review.ParentID == nil || review.IsFlagged {
			continue
		}
		children[*review.ParentID] = append(children[*review.ParentID], review)
	}

	visited := make(map[int]bool)
	var build func(review model.Review) model.ReviewNode
	build = func(review model.Review) model.ReviewNode {
		visited[review.ReviewID] = true
		node := model.ReviewNode{
			Review:   review,
			Username: username(review.UserID),
			Replies:  []model.ReviewNode{},
		}
		for _, child := range children[review.ReviewID] {
			// a malformed parent chain must not loop forever
			if visited[child.ReviewID] {
				continue
			}
			node.Replies = append(node.Replies, build(child))
		}
		return node
	}

	threads := []model.ReviewNode{}
	for _, root := range roots {
		if root.IsFlagged {
			continue
		}
		threads = append(threads, build(root))
	}

	return threads
}
