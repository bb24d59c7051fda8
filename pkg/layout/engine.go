package layout

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindlayout/pkg/mindmap"
	"github.com/matzehuels/mindlayout/pkg/observability"
)

// maxPasses bounds the validation loop. A pass only repeats when a node is
// marked dirty while the pass runs, which a well-behaved oracle never does.
const maxPasses = 4

// Diagnostic kinds reported once per engine.
const (
	DiagSideConflict      = "side-conflict"
	DiagEmptySummaryGroup = "empty-summary-group"
	DiagUnstableLayout    = "unstable-layout"
)

// Stats counts the work done by an engine.
type Stats struct {
	// Passes is the number of validations that recomputed anything.
	Passes int
	// Recomputed is the total number of node layouts computed.
	Recomputed int
	// LastRecomputed is the number of node layouts computed by the most
	// recent pass.
	LastRecomputed int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger receiving diagnostics and debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithContentSize replaces the default TextOracle.
func WithContentSize(o ContentSizeOracle) Option {
	return func(e *Engine) {
		if o != nil {
			e.content = o
		}
	}
}

// WithCloudHeight replaces the default CloudOracle.
func WithCloudHeight(o CloudHeightOracle) Option {
	return func(e *Engine) {
		if o != nil {
			e.cloud = o
		}
	}
}

// WithParams replaces DefaultParams.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithHooks replaces the globally registered layout hooks.
func WithHooks(h observability.LayoutHooks) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = h
		}
	}
}

// Engine lays out a mindmap.Map and keeps the result current. It observes
// the map: every mutation marks the affected nodes and their ancestors
// dirty, and the next read recomputes exactly the dirty nodes, children
// before parents, then assigns absolute positions from the root down.
//
// An Engine is not safe for concurrent use, and the map must not be mutated
// while a layout pass runs.
type Engine struct {
	m       *mindmap.Map
	params  Params
	logger  *log.Logger
	content ContentSizeOracle
	cloud   CloudHeightOracle
	hooks   observability.LayoutHooks

	nodes      []*LayoutNode
	absX, absY []int
	placed     []bool
	positioned bool

	warned map[string]bool
	stats  Stats
}

// NewEngine creates an engine for m and registers it as an observer.
func NewEngine(m *mindmap.Map, opts ...Option) *Engine {
	e := &Engine{
		m:       m,
		params:  DefaultParams(),
		logger:  log.New(io.Discard),
		content: DefaultTextOracle(),
		cloud:   DefaultCloudOracle(),
		hooks:   observability.Layout(),
		warned:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.params.Zoom <= 0 {
		e.params.Zoom = 1
	}
	m.Observe(e)
	return e
}

// Close detaches the engine from its map.
func (e *Engine) Close() { e.m.Unobserve(e) }

// Map returns the map being laid out.
func (e *Engine) Map() *mindmap.Map { return e.m }

// Params returns the current settings.
func (e *Engine) Params() Params { return e.params }

// Stats returns the work counters.
func (e *Engine) Stats() Stats { return e.stats }

// NodeChanged implements mindmap.Observer.
func (e *Engine) NodeChanged(id mindmap.NodeID, c mindmap.Change) {
	switch c {
	case mindmap.ChangeStyle:
		// Orientation and side are inherited down the branch.
		e.markSubtree(id)
	case mindmap.ChangeChildren:
		e.MarkDirty(id)
		for _, child := range e.m.Children(id) {
			if ln := e.lookup(child); ln != nil && ln.parent != id {
				e.markSubtree(child)
			}
		}
	default:
		e.MarkDirty(id)
	}
}

// MarkDirty flags id and all its ancestors for recomputation.
func (e *Engine) MarkDirty(id mindmap.NodeID) {
	e.positioned = false
	for cur := id; cur != mindmap.NoNode; cur = e.m.Parent(cur) {
		e.node(cur).dirty = true
	}
}

func (e *Engine) markSubtree(id mindmap.NodeID) {
	e.m.Walk(id, func(n *mindmap.Node) bool {
		e.node(n.ID).dirty = true
		return true
	})
	e.MarkDirty(id)
}

// InvalidateAll flags every node, as needed after a global change.
func (e *Engine) InvalidateAll() {
	e.markSubtree(e.m.Root())
}

// RecomputeLayout invalidates id and validates the map.
func (e *Engine) RecomputeLayout(id mindmap.NodeID) {
	e.MarkDirty(id)
	e.Validate()
}

// SetZoom changes the zoom factor. Non-positive values are ignored.
func (e *Engine) SetZoom(z float64) {
	if z <= 0 || z == e.params.Zoom {
		return
	}
	e.params.Zoom = z
	e.InvalidateAll()
}

// SetOutline switches between the outline and the regular layout.
func (e *Engine) SetOutline(on bool) {
	if on == e.params.Outline {
		return
	}
	e.params.Outline = on
	e.InvalidateAll()
}

// SetParams replaces all settings.
func (e *Engine) SetParams(p Params) {
	if p.Zoom <= 0 {
		p.Zoom = 1
	}
	e.params = p
	e.InvalidateAll()
}

// Layout validates the map and returns the geometry of id, or nil when id
// is unknown or hidden inside a folded branch.
func (e *Engine) Layout(id mindmap.NodeID) *LayoutNode {
	e.Validate()
	if !e.visible(id) {
		return nil
	}
	return e.nodes[id]
}

// Position validates the map and returns the absolute origin of id's box.
func (e *Engine) Position(id mindmap.NodeID) (x, y int, ok bool) {
	e.Validate()
	if !e.visible(id) {
		return 0, 0, false
	}
	return e.absX[id], e.absY[id], true
}

// Box returns the absolute box of id.
func (e *Engine) Box(id mindmap.NodeID) (Block, bool) {
	x, y, ok := e.Position(id)
	if !ok {
		return Block{}, false
	}
	return e.nodes[id].Box().Translate(x, y), true
}

// ContentBox returns the absolute content box of id.
func (e *Engine) ContentBox(id mindmap.NodeID) (Block, bool) {
	x, y, ok := e.Position(id)
	if !ok {
		return Block{}, false
	}
	return e.nodes[id].Content().Translate(x, y), true
}

func (e *Engine) visible(id mindmap.NodeID) bool {
	return id >= 0 && int(id) < len(e.placed) && e.placed[id]
}

// Validate recomputes every dirty node and refreshes absolute positions.
func (e *Engine) Validate() { e.ValidateContext(context.Background()) }

// ValidateContext is Validate with a context passed to the hooks.
func (e *Engine) ValidateContext(ctx context.Context) {
	root := e.m.Root()
	if !e.node(root).dirty && e.positioned {
		return
	}
	start := time.Now()
	mode := e.mode()
	e.hooks.OnLayoutStart(ctx, mode, e.m.Len())

	recomputed := 0
	for pass := 0; e.node(root).dirty; pass++ {
		if pass == maxPasses {
			e.warnOnce(ctx, DiagUnstableLayout, "layout did not settle", "passes", pass)
			break
		}
		recomputed += e.ensure(ctx, root)
	}
	e.assignPositions()

	if recomputed > 0 {
		e.stats.Passes++
	}
	e.stats.Recomputed += recomputed
	e.stats.LastRecomputed = recomputed
	elapsed := time.Since(start)
	e.hooks.OnLayoutComplete(ctx, mode, recomputed, elapsed)
	e.logger.Debug("layout validated", "mode", mode, "recomputed", recomputed, "nodes", e.m.Len(), "duration", elapsed)
}

func (e *Engine) mode() string {
	if e.params.Outline {
		return "outline"
	}
	return "vertical"
}

// ensure lays out the dirty part of id's subtree, children first. It
// returns the number of nodes recomputed.
func (e *Engine) ensure(ctx context.Context, id mindmap.NodeID) int {
	ln := e.node(id)
	if !ln.dirty {
		return 0
	}
	n := e.m.MustNode(id)
	children := e.m.VisibleChildren(id)

	var (
		strat  strategy = verticalStrategy{}
		levels          = Ignoring
		widths          = Ignoring
		infos  []ChildInfo
	)
	if e.params.Outline {
		strat = outlineStrategy{}
	} else {
		infos = e.childInfos(ctx, n, children)
		levels = NewSummaryLevels(infos)
		if len(levels.Demoted) > 0 {
			e.warnOnce(ctx, DiagEmptySummaryGroup, "summary brackets no sibling, laid out as an item",
				"node", e.m.MustNode(children[levels.Demoted[0]]).Label())
		}
		if AxisOf(e.m.EffectiveOrientation(id)) == Vertical {
			widths = levels
		}
	}
	e.applySummaryWidths(children, infos, widths)

	count := 0
	for _, c := range children {
		count += e.ensure(ctx, c)
	}

	pl := e.placementFor(n, ln, children, infos, levels)
	strat.layout(pl)
	for i := range pl.kids {
		ln.ChildSides[i] = pl.kids[i].side
		ln.ChildFree[i] = pl.kids[i].free
		ln.Groups[i] = -1
		if i < len(levels.Levels) {
			ln.Levels[i] = levels.Levels[i]
			ln.Groups[i] = levels.GroupStart[i]
		}
	}
	ln.dirty = false
	return count + 1
}

// childInfos resolves the side of each visible child. A child asking for a
// side its parent does not allow is forced onto the allowed side.
func (e *Engine) childInfos(ctx context.Context, n *mindmap.Node, children []mindmap.NodeID) []ChildInfo {
	infos := make([]ChildInfo, len(children))
	for i, c := range children {
		cn := e.m.MustNode(c)
		side, conflict := e.m.ResolveSide(c)
		if conflict {
			e.warnOnce(ctx, DiagSideConflict, "child side not allowed by parent, using parent's side",
				"node", cn.Label(), "parent", n.Label(), "side", side)
		}
		infos[i] = ChildInfo{
			Summary:    cn.IsSummaryNode() && !cn.Free,
			FirstGroup: cn.FirstGroup,
			Free:       cn.Free,
			Side:       side,
		}
	}
	return infos
}

// applySummaryWidths makes the unfolded items of every first-level summary
// group as wide as the widest content in the group. Children whose minimum
// changes are invalidated before they are laid out.
func (e *Engine) applySummaryWidths(children []mindmap.NodeID, infos []ChildInfo, levels SummaryLevels) {
	want := make([]int, len(children))
	for i := range children {
		if i >= len(levels.Levels) || levels.Levels[i] != 1 {
			continue
		}
		var members []int
		widest := 0
		for p := levels.GroupStart[i]; p < i; p++ {
			mn := e.m.MustNode(children[p])
			if infos[p].Side != infos[i].Side || levels.Levels[p] != 0 || mn.Free || mn.Folded {
				continue
			}
			w, _ := e.content.ContentSize(mn, e.params.Zoom, 0)
			widest = max(widest, w)
			members = append(members, p)
		}
		for _, p := range members {
			want[p] = widest
		}
	}
	for i, c := range children {
		if ln := e.node(c); ln.MinContentWidth != want[i] {
			ln.MinContentWidth = want[i]
			e.MarkDirty(c)
		}
	}
}

func (e *Engine) placementFor(n *mindmap.Node, ln *LayoutNode, children []mindmap.NodeID, infos []ChildInfo, levels SummaryLevels) *placement {
	p := e.params
	cw, ch := e.content.ContentSize(n, p.Zoom, ln.MinContentWidth)

	ln.reset(len(children))
	ln.Children = append(ln.Children, children...)
	ln.parent = n.Parent

	pl := &placement{
		p:        p,
		ln:       ln,
		node:     n,
		axis:     AxisOf(e.m.EffectiveOrientation(n.ID)),
		cw:       max(cw, 0),
		ch:       max(ch, 0),
		cloud:    max(e.cloud.CloudExtraHeight(n, p.Zoom), 0),
		kids:     make([]kid, len(children)),
		levels:   levels,
		compact:  p.Compact || n.Compact,
		align:    p.alignment(n.Alignment),
		minDist:  p.gapOr(n.Gaps.MinChildDistance, p.MinimalChildDistance),
		baseDist: p.gapOr(n.Gaps.BaseDistance, p.BaseDistance),
	}
	for i, c := range children {
		cn := e.m.MustNode(c)
		k := kid{id: c, node: cn, ln: e.nodes[c], side: mindmap.SideBottomOrRight, free: cn.Free}
		if infos != nil {
			k.side = infos[i].Side
		}
		pl.kids[i] = k
	}
	return pl
}

// assignPositions walks the laid-out tree from the root and records the
// absolute origin of every visible node.
func (e *Engine) assignPositions() {
	e.grow()
	clear(e.placed)
	var walk func(id mindmap.NodeID, x, y int)
	walk = func(id mindmap.NodeID, x, y int) {
		e.absX[id], e.absY[id], e.placed[id] = x, y, true
		ln := e.nodes[id]
		for i, c := range ln.Children {
			walk(c, x+ln.ChildX[i], y+ln.ChildY[i])
		}
	}
	walk(e.m.Root(), 0, 0)
	e.positioned = true
}

// node returns the layout record of id, creating it dirty on first use.
func (e *Engine) node(id mindmap.NodeID) *LayoutNode {
	e.grow()
	if e.nodes[id] == nil {
		e.nodes[id] = newLayoutNode(id)
	}
	return e.nodes[id]
}

func (e *Engine) lookup(id mindmap.NodeID) *LayoutNode {
	if id < 0 || int(id) >= len(e.nodes) {
		return nil
	}
	return e.nodes[id]
}

func (e *Engine) grow() {
	n := e.m.Capacity()
	for len(e.nodes) < n {
		e.nodes = append(e.nodes, nil)
		e.absX = append(e.absX, 0)
		e.absY = append(e.absY, 0)
		e.placed = append(e.placed, false)
	}
}

// warnOnce logs a structural diagnostic the first time its kind is seen.
func (e *Engine) warnOnce(ctx context.Context, kind, msg string, keyvals ...any) {
	if e.warned[kind] {
		return
	}
	e.warned[kind] = true
	e.logger.Warn(msg, append([]any{"kind", kind}, keyvals...)...)
	e.hooks.OnDiagnostic(ctx, kind)
}

// Diagnostics returns the kinds of structural problems seen so far.
func (e *Engine) Diagnostics() []string {
	out := make([]string, 0, len(e.warned))
	for _, kind := range []string{DiagSideConflict, DiagEmptySummaryGroup, DiagUnstableLayout} {
		if e.warned[kind] {
			out = append(out, kind)
		}
	}
	return out
}
