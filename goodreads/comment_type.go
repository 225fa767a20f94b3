package goodreads

// CommentType identifies the kind of resource a comment thread is attached to
type CommentType string

const (
	CommentAuthorBlogPost        CommentType = "author_blog_post"
	CommentBlog                  CommentType = "blog"
	CommentBookNewsPost          CommentType = "book_news_post"
	CommentChapter               CommentType = "chapter"
	CommentComment               CommentType = "comment"
	CommentCommunityAnswer       CommentType = "community_answer"
	CommentEventResponse         CommentType = "event_response"
	CommentFanship               CommentType = "fanship"
	CommentFriend                CommentType = "friend"
	CommentGiveaway              CommentType = "giveaway"
	CommentGiveawayRequest       CommentType = "giveaway_request"
	CommentGroupUser             CommentType = "group_user"
	CommentInterview             CommentType = "interview"
	CommentLibrarianNote         CommentType = "librarian_note"
	CommentLinkCollection        CommentType = "link_collection"
	CommentList                  CommentType = "list"
	CommentOwnedBook             CommentType = "owned_book"
	CommentPhoto                 CommentType = "photo"
	CommentPoll                  CommentType = "poll"
	CommentPollVote              CommentType = "poll_vote"
	CommentQueuedItem            CommentType = "queued_item"
	CommentQuestion              CommentType = "question"
	CommentQuestionUserStat      CommentType = "question_user_stat"
	CommentQuiz                  CommentType = "quiz"
	CommentQuizScore             CommentType = "quiz_score"
	CommentRating                CommentType = "rating"
	CommentReadStatus            CommentType = "read_status"
	CommentRecommendation        CommentType = "recommendation"
	CommentRecommendationRequest CommentType = "recommendation_request"
	CommentReview                CommentType = "review"
	CommentTopic                 CommentType = "topic"
	CommentUser                  CommentType = "user"
	CommentUserChallenge         CommentType = "user_challenge"
	CommentUserFollowing         CommentType = "user_following"
	CommentUserListChallenge     CommentType = "user_list_challenge"
	CommentUserListVote          CommentType = "user_list_vote"
	CommentUserQuote             CommentType = "user_quote"
	CommentUserStatus            CommentType = "user_status"
	CommentVideo                 CommentType = "video"
)

var commentTypes = []CommentType{
	CommentAuthorBlogPost, CommentBlog, CommentBookNewsPost, CommentChapter,
	CommentComment, CommentCommunityAnswer, CommentEventResponse, CommentFanship,
	CommentFriend, CommentGiveaway, CommentGiveawayRequest, CommentGroupUser,
	CommentInterview, CommentLibrarianNote, CommentLinkCollection, CommentList,
	CommentOwnedBook, CommentPhoto, CommentPoll, CommentPollVote, CommentQueuedItem,
	CommentQuestion, CommentQuestionUserStat, CommentQuiz, CommentQuizScore,
	CommentRating, CommentReadStatus, CommentRecommendation,
	CommentRecommendationRequest, CommentReview, CommentTopic, CommentUser,
	CommentUserChallenge, CommentUserFollowing, CommentUserListChallenge,
	CommentUserListVote, CommentUserQuote, CommentUserStatus, CommentVideo,
}

// CommentTypes returns every supported comment type
func CommentTypes() []CommentType {
	out := make([]CommentType, len(commentTypes))
	copy(out, commentTypes)
	return out
}

// Valid reports whether ct is one of the supported comment types
func (ct CommentType) Valid() bool {
	for _, known := range commentTypes {
		if ct == known {
			return true
		}
	}
	return false
}

// String returns the tag used in the endpoint path
func (ct CommentType) String() string {
	return string(ct)
}
