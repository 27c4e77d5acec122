// Package pathfinder implements bounded-depth DFS over a Network, shaped
// by a per-hop filter tuple and the loops/mode options.
package pathfinder

import (
	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/network"
)

// Path is a sequence of nodes, start to end inclusive.
type Path []*entity.Entity

// Options configures FindPaths. PerHop holds one network.PartnerQuery per
// hop index; a tuple shorter than MaxLen is padded with its own last
// element, one longer than MaxLen is truncated.
type Options struct {
	End       *entity.Key // nil: any endpoint qualifies, subject to Loops
	Loops     bool
	MinLen    int
	MaxLen    int
	PerHop    []network.PartnerQuery
}

func (o Options) hopQuery(i int) network.PartnerQuery {
	if len(o.PerHop) == 0 {
		return network.PartnerQuery{Mode: network.PartnerOut}
	}
	if i < len(o.PerHop) {
		return o.PerHop[i]
	}
	return o.PerHop[len(o.PerHop)-1]
}

// FindPaths runs DFS from every node in starts: a path of length
// len(path)-1 hops is yielded when that length is within [MinLen, MaxLen]
// AND either it reaches End, or (End is nil, !Loops, and length == MaxLen),
// or (Loops and first == last). When Loops is false, nodes already on the
// current path are excluded from expansion.
func FindPaths(net *network.Network, starts []entity.Key, opts Options) []Path {
	var out []Path
	for _, startKey := range starts {
		start, ok := net.Node(startKey)
		if !ok {
			continue
		}
		visited := map[entity.Key]struct{}{start.Key: {}}
		walk(net, opts, Path{start}, visited, &out)
	}
	return out
}

func walk(net *network.Network, opts Options, path Path, visited map[entity.Key]struct{}, out *[]Path) {
	hops := len(path) - 1

	if hops >= opts.MinLen && hops <= opts.MaxLen {
		first, last := path[0], path[len(path)-1]
		switch {
		case opts.End != nil && last.Key == *opts.End:
			*out = append(*out, clone(path))
		case opts.End == nil && !opts.Loops && hops == opts.MaxLen:
			*out = append(*out, clone(path))
		case opts.Loops && hops > 0 && first.Key == last.Key:
			*out = append(*out, clone(path))
		}
	}

	if hops >= opts.MaxLen {
		return
	}
	if opts.Loops && hops > 0 && path[0].Key == path[len(path)-1].Key {
		// the loop is closed; start may only appear at the endpoints.
		return
	}

	last := path[len(path)-1]
	q := opts.hopQuery(hops)
	for _, next := range net.Partners(last.Key, q) {
		if !opts.Loops {
			if _, seen := visited[next.Key]; seen {
				continue
			}
		} else if hops+1 < opts.MinLen && next.Key == path[0].Key {
			// returning to start before MinLen hops would close a loop
			// shorter than the minimum, which can never be yielded.
			continue
		}

		visited[next.Key] = struct{}{}
		walk(net, opts, append(path, next), visited, out)
		delete(visited, next.Key)
	}
}

func clone(path Path) Path {
	out := make(Path, len(path))
	copy(out, path)
	return out
}
