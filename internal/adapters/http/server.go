// Package http serves aggregated results over a read-only JSON API.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

// Engine is the session surface the server reads from. The server never
// mutates the tree; aggregation happens before serving starts.
type Engine interface {
	Root() *domain.Node
	Levels() domain.LevelMap
}

// TreeNode is the JSON shape of one node in the structure dump.
type TreeNode struct {
	Name     string     `json:"name"`
	Depth    int        `json:"depth"`
	Leaf     bool       `json:"leaf"`
	Stats    []string   `json:"stats,omitempty"`
	Branches []TreeNode `json:"branches,omitempty"`
}

// StatResponse carries one node's aggregated statistic.
type StatResponse struct {
	Path     []string           `json:"path"`
	Stat     string             `json:"stat"`
	Channels domain.ChannelStat `json:"channels"`
}

// NewHandler builds the results API. metricsHandler, when non-nil, is
// mounted at /metrics.
func NewHandler(engine Engine, metricsHandler http.Handler) http.Handler {
	s := &server{engine: engine}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/v1/tree", s.handleTree)
	r.Get("/v1/levels", s.handleLevels)
	r.Get("/v1/stats/{stat}", s.handleStat)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
	return r
}

type server struct {
	engine Engine
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	root := s.engine.Root()
	if root == nil {
		http.Error(w, "no data tree loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, dumpNode(root))
}

func (s *server) handleLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Levels().LayerLayout(0))
}

// handleStat returns the named statistic of one node, located by its
// slash-separated path below the root (empty path selects the root itself).
func (s *server) handleStat(w http.ResponseWriter, r *http.Request) {
	root := s.engine.Root()
	if root == nil {
		http.Error(w, "no data tree loaded", http.StatusServiceUnavailable)
		return
	}
	stat := chi.URLParam(r, "stat")

	node := root
	path := r.URL.Query().Get("path")
	if path != "" {
		for _, name := range strings.Split(path, "/") {
			branch, ok := node.Branch(name)
			if !ok {
				http.Error(w, "node not found: "+path, http.StatusNotFound)
				return
			}
			node = branch
		}
	}

	channels, ok := node.Computed(stat)
	if !ok {
		http.Error(w, "statistic not computed: "+stat, http.StatusNotFound)
		slog.Warn("statistic requested before aggregation", "stat", stat, "path", path)
		return
	}
	writeJSON(w, StatResponse{Path: node.Path(), Stat: stat, Channels: channels})
}

func dumpNode(n *domain.Node) TreeNode {
	out := TreeNode{
		Name:  n.Name(),
		Depth: n.Depth(),
		Leaf:  n.IsLeaf(),
		Stats: n.ComputedNames(),
	}
	for _, b := range n.Branches() {
		out.Branches = append(out.Branches, dumpNode(b))
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
