package predicates

import (
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
)

type ServerBased interface {
	GetServer() string
}

// ServerPredicate keeps the objects that reference one of a set of SFTPGo servers.
// It lets several operator instances share a cluster, each owning its own servers.
type ServerPredicate struct {
	Servers map[string]struct{}
}

func NewServerPredicate(servers ...string) ServerPredicate {
	known := make(map[string]struct{}, len(servers))
	for _, s := range servers {
		known[s] = struct{}{}
	}
	return ServerPredicate{Servers: known}
}

func (sp ServerPredicate) MatchesServer(obj client.Object) bool {
	serverBased, ok := obj.(ServerBased)
	if !ok {
		return false
	}
	_, known := sp.Servers[serverBased.GetServer()]
	return known
}

func (sp ServerPredicate) Create(e event.CreateEvent) bool {
	return sp.MatchesServer(e.Object)
}

func (sp ServerPredicate) Delete(e event.DeleteEvent) bool {
	return sp.MatchesServer(e.Object)
}

func (sp ServerPredicate) Update(e event.UpdateEvent) bool {
	// server is immutable, ObjectOld and ObjectNew agree
	return sp.MatchesServer(e.ObjectNew)
}

func (sp ServerPredicate) Generic(e event.GenericEvent) bool {
	return sp.MatchesServer(e.Object)
}
