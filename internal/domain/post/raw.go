package post

// RawEntry is a loosely-typed content entry: the metadata envelope as produced
// by a loader. The front-matter envelope, if any, is nested under FrontMatterKey.
type RawEntry map[string]any

// Envelope keys recognized in a RawEntry.
const (
	FrontMatterKey      = "frontMatter"
	FrontMatterKeySnake = "front_matter"
)

// FrontMatter returns the nested front-matter envelope, or nil.
func (e RawEntry) FrontMatter() map[string]any {
	for _, k := range []string{FrontMatterKey, FrontMatterKeySnake} {
		switch fm := e[k].(type) {
		case map[string]any:
			return fm
		case RawEntry:
			return fm
		case map[any]any:
			out := make(map[string]any, len(fm))
			for key, v := range fm {
				if s, ok := key.(string); ok {
					out[s] = v
				}
			}
			return out
		}
	}
	return nil
}
