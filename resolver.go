package presskit

// BlogIndexPath is where visitors land when they request a post that is
// authored but withheld from publication.
const BlogIndexPath = "/blog/"

// Action classifies the outcome of resolving a slug.
type Action int

const (
	// ActionNotFound means the slug matched no registered post. The empty
	// slug falls in here too. The page shell renders its 404 state.
	ActionNotFound Action = iota
	// ActionRender means the slug matched a published post.
	ActionRender
	// ActionRedirect means the slug matched a registered but unpublished
	// post. Drafts are soft-hidden: visitors bounce to the blog index
	// rather than seeing placeholder content or a 404.
	ActionRedirect
)

// Resolution is the outcome of a resolve call. Exactly one of the payload
// fields is meaningful, selected by Action.
type Resolution struct {
	Action   Action
	Entry    Entry  // set when Action == ActionRender
	Location string // set when Action == ActionRedirect
}

// Resolve maps a slug to one of three outcomes: render the matched entry,
// redirect to the blog index, or fall through to not-found. It is a pure
// function of the slug and the registry contents; no input is an error.
//
// Callers honoring a redirect must issue a non-permanent redirect so the
// draft URL neither sticks in caches nor in browser history.
func (r *Registry) Resolve(slug string) Resolution {
	entry, ok := r.entries[slug]
	if !ok {
		return Resolution{Action: ActionNotFound}
	}
	if _, pub := r.published[slug]; !pub {
		return Resolution{Action: ActionRedirect, Location: BlogIndexPath}
	}
	return Resolution{Action: ActionRender, Entry: entry}
}
