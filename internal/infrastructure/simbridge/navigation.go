package simbridge

import (
	"github.com/bnema/guestview/internal/domain/entity"
)

func (b *Bridge) Go(id entity.GuestInstanceID, relativeIndex int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodGo, id, relativeIndex)

	g, ok := b.live(id)
	if !ok {
		return
	}
	target := g.index + relativeIndex
	if relativeIndex == 0 || target < 0 || target >= len(g.history) {
		return
	}
	g.index = target
	b.enqueue(g, entity.DidStartLoading{})
	b.commit(g)
	b.enqueue(g, entity.DidStopLoading{})
}

func (b *Bridge) LoadURL(id entity.GuestInstanceID, url string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodLoadURL, id, url)

	if g, ok := b.live(id); ok {
		b.navigate(g, url)
	}
}

func (b *Bridge) Reload(id entity.GuestInstanceID, ignoreCache bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodReload, id, ignoreCache)

	g, ok := b.live(id)
	if !ok || g.currentURL() == "" {
		return
	}
	b.enqueue(g, entity.DidStartLoading{})
	b.commit(g)
	b.enqueue(g, entity.DidFrameFinishLoad{URL: g.currentURL(), IsTopLevel: true})
	b.enqueue(g, entity.DidStopLoading{})
}

func (b *Bridge) Stop(id entity.GuestInstanceID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodStop, id)

	if g, ok := b.live(id); ok {
		b.enqueue(g, entity.DidStopLoading{})
	}
}

// navigate pushes url onto the history, dropping forward entries, and queues
// the load sequence. Callers hold b.mu.
func (b *Bridge) navigate(g *guest, url string) {
	b.enqueue(g, entity.DidStartLoading{})

	if f, failed := b.failures[url]; failed {
		b.enqueue(g, entity.DidFailLoad{
			URL:              url,
			IsTopLevel:       true,
			ErrorCode:        f.code,
			ErrorDescription: f.description,
		})
		b.enqueue(g, entity.DidStopLoading{})
		return
	}

	g.history = append(g.history[:g.index+1], url)
	g.index = len(g.history) - 1
	g.title = ""

	b.commit(g)
	b.enqueue(g, entity.DidFrameFinishLoad{URL: url, IsTopLevel: true})
	b.enqueue(g, entity.DidStopLoading{})
}

func (b *Bridge) commit(g *guest) {
	b.enqueue(g, entity.NavigationCommitted{
		URL:        g.currentURL(),
		IsTopLevel: true,
		EntryIndex: g.index,
		EntryCount: len(g.history),
		ProcessID:  g.processID,
	})
}
