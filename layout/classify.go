package layout

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/scriba/model"
)

// Sentinel errors for classifier configuration.
var (
	ErrInvalidMultiplier = errors.New("gap multiplier must be positive")
	ErrInvalidRatio      = errors.New("heading size ratio must exceed 1")
	ErrInvalidIndent     = errors.New("indent per level must be positive")
)

// Config holds block classification configuration
type Config struct {
	// GapMultiplier starts a new block when the baseline gap between
	// consecutive lines exceeds this multiple of the line height.
	// Default: 1.5
	GapMultiplier float64 `yaml:"gap_multiplier"`

	// HeadingSizeRatio classifies a block as a heading when its font size
	// strictly exceeds this multiple of the page's body size. Default: 1.2
	HeadingSizeRatio float64 `yaml:"heading_size_ratio"`

	// IndentPerLevel is the horizontal indent that nests a list item one
	// level deeper (points). Default: 18.0
	IndentPerLevel float64 `yaml:"indent_per_level"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		GapMultiplier:    1.5,
		HeadingSizeRatio: 1.2,
		IndentPerLevel:   18.0,
	}
}

// Validate checks the configuration for usable values
func (c Config) Validate() error {
	if c.GapMultiplier <= 0 {
		return ErrInvalidMultiplier
	}
	if c.HeadingSizeRatio <= 1 {
		return ErrInvalidRatio
	}
	if c.IndentPerLevel <= 0 {
		return ErrInvalidIndent
	}
	return nil
}

// TextBlock is a classified group of lines. Kind is one of BlockHeading,
// BlockListItem, or BlockParagraph; tables never pass through the
// classifier.
type TextBlock struct {
	Kind model.BlockKind
	BBox model.BBox

	// Level is the heading level (1-6); meaningful for headings
	Level int
	// Depth is the nesting depth; meaningful for list items
	Depth int
	// Marker is the rendered list marker; meaningful for list items
	Marker string

	// Text is the block's assembled content, marker stripped for list items
	Text string

	// Lines preserves the span geometry for link embedding
	Lines []Line

	// Offsets holds, per line and span, the span text's starting byte
	// offset within Text. Spans swallowed by a stripped list marker clamp
	// to 0.
	Offsets [][]int
}

// orderedMarker matches a numbered list marker such as "1." or "12)"
var orderedMarker = regexp.MustCompile(`^(\d+[.)])(?:\s+|$)`)

// bulletRunes are the glyphs that open an unordered list item
var bulletRunes = map[rune]bool{
	'•': true,
	'◦': true,
	'▪': true,
	'-': true,
	'–': true,
	'*': true,
}

// Classifier assigns structural kinds to text outside tables. Spans group
// into lines, lines into blocks by vertical gaps, and each block becomes a
// heading, list item, or paragraph.
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultConfig()}
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config Config) *Classifier {
	return &Classifier{config: config}
}

// Configure sets classifier parameters
func (c *Classifier) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	c.config = config
	return nil
}

// Classify groups the given spans into classified blocks in reading order.
// The caller passes only spans not consumed by table detection.
func (c *Classifier) Classify(spans []model.TextSpan) []TextBlock {
	lines := BuildLines(spans)
	if len(lines) == 0 {
		return nil
	}

	blocks := c.groupBlocks(lines)
	body := bodyFontSize(spans)

	for i := range blocks {
		c.classifyBlock(&blocks[i], body)
	}
	c.assignHeadingLevels(blocks)
	c.assignListDepths(blocks)

	return blocks
}

// groupBlocks merges consecutive lines into blocks. A new block starts on
// a vertical gap larger than GapMultiplier times the previous line's
// height, or on a line that opens with a list marker: every list item is
// its own block no matter how tight the leading.
func (c *Classifier) groupBlocks(lines []Line) []TextBlock {
	var blocks []TextBlock
	var current []Line

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, newTextBlock(current))
			current = nil
		}
	}

	for _, line := range lines {
		if len(current) > 0 {
			prev := current[len(current)-1]
			gap := prev.Baseline - line.Baseline
			if gap > c.config.GapMultiplier*prev.Height {
				flush()
			} else if _, _, ok := splitMarker(line.Text); ok {
				flush()
			}
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

func newTextBlock(lines []Line) TextBlock {
	block := TextBlock{
		Kind:  model.BlockParagraph,
		BBox:  lines[0].BBox,
		Lines: lines,
	}
	for _, line := range lines[1:] {
		block.BBox = block.BBox.Union(line.BBox)
	}
	return block
}

// classifyBlock decides heading vs list item vs paragraph and assembles
// the block text. Heading levels and list depths need page-wide context
// and are assigned afterwards.
func (c *Classifier) classifyBlock(block *TextBlock, bodySize float64) {
	size := blockFontSize(block.Lines)
	bold := blockBold(block.Lines)

	if size > bodySize*c.config.HeadingSizeRatio || (bold && size > bodySize) {
		block.Kind = model.BlockHeading
		block.Text = joinLines(block.Lines)
		block.Offsets = blockOffsets(block.Lines, 0)
		return
	}

	if marker, rest, ok := splitMarker(block.Lines[0].Text); ok {
		block.Kind = model.BlockListItem
		block.Marker = marker
		parts := []string{rest}
		for _, line := range block.Lines[1:] {
			parts = append(parts, line.Text)
		}
		block.Text = strings.Join(parts, " ")
		block.Offsets = blockOffsets(block.Lines, len(block.Lines[0].Text)-len(rest))
		return
	}

	block.Kind = model.BlockParagraph
	block.Text = joinLines(block.Lines)
	block.Offsets = blockOffsets(block.Lines, 0)
}

// splitMarker recognizes a list marker at the start of a line and returns
// the rendered marker and the remaining text. Bullet glyphs must be
// followed by a space (or end the line) so hyphenated words do not read
// as list items; all bullets render as the dash. Numbered markers keep
// their literal text.
func splitMarker(text string) (marker, rest string, ok bool) {
	trimmed := strings.TrimLeft(text, " ")

	if m := orderedMarker.FindStringSubmatch(trimmed); m != nil {
		return m[1], strings.TrimLeft(trimmed[len(m[0]):], " "), true
	}

	runes := []rune(trimmed)
	if len(runes) > 0 && bulletRunes[runes[0]] {
		if len(runes) == 1 {
			return "-", "", true
		}
		if runes[1] == ' ' {
			return "-", strings.TrimLeft(string(runes[1:]), " "), true
		}
	}
	return "", "", false
}

// assignHeadingLevels maps the page's distinct heading sizes, largest
// first, to levels 1 through 6. Sizes within half a point count as one
// level.
func (c *Classifier) assignHeadingLevels(blocks []TextBlock) {
	seen := make(map[float64]bool)
	var sizes []float64
	for i := range blocks {
		if blocks[i].Kind != model.BlockHeading {
			continue
		}
		key := roundHalf(blockFontSize(blocks[i].Lines))
		if !seen[key] {
			seen[key] = true
			sizes = append(sizes, key)
		}
	}
	if len(sizes) == 0 {
		return
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	level := make(map[float64]int, len(sizes))
	for i, size := range sizes {
		l := i + 1
		if l > 6 {
			l = 6
		}
		level[size] = l
	}

	for i := range blocks {
		if blocks[i].Kind == model.BlockHeading {
			blocks[i].Level = level[roundHalf(blockFontSize(blocks[i].Lines))]
		}
	}
}

// assignListDepths derives each list item's depth from its indent
// relative to the shallowest list item on the page.
func (c *Classifier) assignListDepths(blocks []TextBlock) {
	base := math.Inf(1)
	for i := range blocks {
		if blocks[i].Kind == model.BlockListItem && blocks[i].BBox.X < base {
			base = blocks[i].BBox.X
		}
	}
	if math.IsInf(base, 1) {
		return
	}

	for i := range blocks {
		if blocks[i].Kind == model.BlockListItem {
			blocks[i].Depth = int((blocks[i].BBox.X - base) / c.config.IndentPerLevel)
		}
	}
}

// bodyFontSize is the page's median span font size, each span one vote
func bodyFontSize(spans []model.TextSpan) float64 {
	if len(spans) == 0 {
		return 0
	}
	sizes := make([]float64, len(spans))
	for i, span := range spans {
		sizes[i] = span.FontSize
	}
	sort.Float64s(sizes)

	n := len(sizes)
	if n%2 == 1 {
		return sizes[n/2]
	}
	return (sizes[n/2-1] + sizes[n/2]) / 2
}

func blockFontSize(lines []Line) float64 {
	total, count := 0.0, 0
	for _, line := range lines {
		for _, span := range line.Spans {
			total += span.FontSize
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func blockBold(lines []Line) bool {
	for _, line := range lines {
		if !line.Bold {
			return false
		}
	}
	return len(lines) > 0
}

func joinLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.Text
	}
	return strings.Join(parts, " ")
}

// blockOffsets maps each span's line-local offset to its offset within the
// assembled block text. stripFirst is the byte count removed from the
// first line by list marker stripping.
func blockOffsets(lines []Line, stripFirst int) [][]int {
	offsets := make([][]int, len(lines))
	lineStart := 0
	for i, line := range lines {
		shift := 0
		if i == 0 {
			shift = stripFirst
		}
		offs := make([]int, len(line.Offsets))
		for j, o := range line.Offsets {
			v := lineStart + o - shift
			if v < 0 {
				v = 0
			}
			offs[j] = v
		}
		offsets[i] = offs
		lineStart += len(line.Text) - shift + 1
	}
	return offsets
}

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
