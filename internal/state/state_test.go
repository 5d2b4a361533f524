package state

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/tdewolff/test"
)

func TestStoreDefaults(t *testing.T) {
	store := NewStore()
	test.T(t, store.Snapshot().Phase, BOOTING)
	store.SetPhase(READY)
	test.T(t, store.Snapshot().Phase, READY)
}

func TestStoreClients(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddClient(1)
		}()
	}
	wg.Wait()
	test.T(t, store.Snapshot().Clients, 50)
	test.T(t, store.AddClient(-100), 0)
}

func TestStateJSON(t *testing.T) {
	store := NewStore()
	store.SetPhase(STOPPING)
	store.UpdateNetwork(NetworkInfo{IP: "10.0.0.2", URL: "http://10.0.0.2:8080/"})
	b, err := json.Marshal(store.Snapshot())
	test.Error(t, err)
	test.String(t, string(b), `{"phase":"stopping","network":{"ip":"10.0.0.2","url":"http://10.0.0.2:8080/","advertised":false},"clients":0}`)
}
