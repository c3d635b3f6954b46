package constant

const (
	// DefaultUsername replaces a missing or empty display name on decode.
	DefaultUsername = "User"

	// DefaultTranslation is the translation code assumed when the profile
	// carries none. "web" is the World English Bible, the text API default.
	DefaultTranslation = "web"

	// ErrorVerseNumber is the sentinel verse number used when a human-readable
	// error message is synthesized in place of chapter text.
	ErrorVerseNumber = 0

	// QuotaExceededMessage is shown when the AI service declines for usage
	// limits. Never retried automatically.
	QuotaExceededMessage = "Daily study limit reached. Please come back tomorrow."

	// ChatErrorMessage replaces an in-progress assistant message when the
	// streaming response fails upstream.
	ChatErrorMessage = "Sorry, something went wrong answering that. Please try again."
)

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

// Study event types published on the event bus.
const (
	EventChapterCached    = "CHAPTER_CACHED"
	EventChapterCompleted = "CHAPTER_COMPLETED"
	EventBookmarkAdded    = "BOOKMARK_ADDED"
	EventUserLogin        = "USER_LOGIN"
)

// NotificationCacheReset is pushed when a stored chapter turned out to be
// unreadable and was dropped; the next request refetches it.
const NotificationCacheReset = "CACHE_RESET"
