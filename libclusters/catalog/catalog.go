package catalog

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/2x3systems/clusters/clusters"
	"github.com/2x3systems/clusters/libclusters/graph"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState: varint MajorVers, varint MinorVers, varint NumGenerations,
	                    then (varint N, varint NumGraphs) for each generation in ascending N

	kGraphPrefix, N (byte), SeqID (uint32 big endian) => GraphDef: varint Nv, varint Ne, then (varint A, varint B) per edge

Graphs of a generation are stored in the order they were appended, so Select(N) returns them in
Unique Set order.

***/

const (
	kMajorVers = 2024
	kMinorVers = 1

	kGraphPrefix = byte(0x01)
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

// Errors
var (
	ErrBadCatalogParam   = errors.New("bad catalog param")
	ErrCatalogVersion    = errors.New("catalog version is incompatible")
	ErrCatalogReadOnly   = errors.New("catalog is read-only")
	ErrCatalogClosed     = errors.New("catalog is closed")
	ErrCorruptCatalogDef = errors.New("corrupt catalog entry")
)

// Opts specifies how a Catalog is opened.
type Opts struct {
	DbPathName string // if empty, the catalog lives in memory
	ReadOnly   bool
}

// Catalog is a badger-backed store of Unique Sets, keyed by generation (vertex count).
//
// Catalog is a clusters.ResultSink and a clusters.Closer.
type Catalog struct {
	mu         sync.Mutex
	db         *badger.DB
	readOnly   bool
	stateDirty bool
	counts     *treemap.Map // N (int) => NumGraphs (int64)
}

// OpenCatalog opens (or creates) the catalog at opts.DbPathName.
func OpenCatalog(opts Opts) (*Catalog, error) {
	cat := &Catalog{
		readOnly: opts.ReadOnly,
		counts:   treemap.NewWithIntComparator(),
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %q", opts.DbPathName)
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !opts.ReadOnly
	}
	if err != nil {
		cat.db.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *Catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(cat.unmarshalState)
	})
}

func (cat *Catalog) unmarshalState(val []byte) error {
	buf := proto.NewBuffer(val)

	var hdr [3]uint64
	for i := range hdr {
		var err error
		if hdr[i], err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(ErrCorruptCatalogDef, "catalog state header")
		}
	}
	if hdr[0] != kMajorVers || hdr[1] != kMinorVers {
		return errors.Wrapf(ErrCatalogVersion, "found v%d.%d", hdr[0], hdr[1])
	}

	for i := uint64(0); i < hdr[2]; i++ {
		N, err := buf.DecodeVarint()
		if err != nil {
			return errors.Wrap(ErrCorruptCatalogDef, "catalog state")
		}
		count, err := buf.DecodeVarint()
		if err != nil {
			return errors.Wrap(ErrCorruptCatalogDef, "catalog state")
		}
		cat.counts.Put(int(N), int64(count))
	}
	return nil
}

func (cat *Catalog) marshalState() []byte {
	buf := proto.NewBuffer(make([]byte, 0, 16+4*cat.counts.Size()))
	buf.EncodeVarint(kMajorVers)
	buf.EncodeVarint(kMinorVers)
	buf.EncodeVarint(uint64(cat.counts.Size()))
	for it := cat.counts.Iterator(); it.Next(); {
		buf.EncodeVarint(uint64(it.Key().(int)))
		buf.EncodeVarint(uint64(it.Value().(int64)))
	}
	return buf.Bytes()
}

func (cat *Catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.marshalState())
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

// Close flushes the catalog state and closes the db.
func (cat *Catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}
	err := cat.flushState()
	if cerr := cat.db.Close(); err == nil {
		err = cerr
	}
	cat.db = nil
	return err
}

// NumGraphs returns how many graphs with N vertices have been appended.
func (cat *Catalog) NumGraphs(N int) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if count, found := cat.counts.Get(N); found {
		return count.(int64)
	}
	return 0
}

// Generations returns, in ascending order, each vertex count that has graphs in this catalog.
func (cat *Catalog) Generations() []int {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	gens := make([]int, 0, cat.counts.Size())
	for _, N := range cat.counts.Keys() {
		gens = append(gens, N.(int))
	}
	return gens
}

func formGraphKey(key []byte, N int, seqID uint32) []byte {
	key = append(key, kGraphPrefix, byte(N))
	return binary.BigEndian.AppendUint32(key, seqID)
}

// AppendUnique writes each graph of U as a new entry of generation N.
func (cat *Catalog) AppendUnique(N int, U []*graph.Graph) error {
	if N < 0 || N > graph.MaxVertices {
		return errors.Wrapf(ErrBadCatalogParam, "generation N=%d", N)
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return ErrCatalogClosed
	}
	if cat.readOnly {
		return ErrCatalogReadOnly
	}

	prevCount := int64(0)
	if count, found := cat.counts.Get(N); found {
		prevCount = count.(int64)
	}
	if len(U) == 0 {
		return nil
	}

	wb := cat.db.NewWriteBatch()
	seqID := uint32(prevCount)
	for _, X := range U {
		if err := wb.Set(formGraphKey(nil, N, seqID), marshalGraph(X)); err != nil {
			wb.Cancel()
			return err
		}
		seqID++
	}

	cat.counts.Put(N, prevCount+int64(len(U)))
	err := wb.Set(gCatalogStateKey, cat.marshalState())
	if err == nil {
		err = wb.Flush()
	} else {
		wb.Cancel()
	}
	if err != nil {
		cat.counts.Put(N, prevCount)
		return err
	}
	return nil
}

// Select calls onHit with each graph of generation N in the order they were appended.
//
// Enumeration stops when there are no more graphs or if onHit() returns false.
func (cat *Catalog) Select(N int, onHit func(X *graph.Graph) bool) error {
	cat.mu.Lock()
	db := cat.db
	cat.mu.Unlock()
	if db == nil {
		return ErrCatalogClosed
	}

	prefix := [2]byte{kGraphPrefix, byte(N)}

	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
			Prefix:         prefix[:],
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var X *graph.Graph
			err := it.Item().Value(func(val []byte) error {
				var err error
				X, err = unmarshalGraph(val)
				return err
			})
			if err != nil {
				return errors.Wrapf(err, "catalog entry %x", it.Item().Key())
			}
			if !onHit(X) {
				break
			}
		}
		return nil
	})
}

// SelectStream streams every graph with minN..maxN vertices, ascending by vertex count.
func (cat *Catalog) SelectStream(minN, maxN int) *clusters.GraphStream {
	stream := clusters.NewGraphStream()

	go func() {
		var err error
		for _, N := range cat.Generations() {
			if N < minN || N > maxN {
				continue
			}
			err = cat.Select(N, func(X *graph.Graph) bool {
				err = stream.AppendUnique(N, []*graph.Graph{X})
				return err == nil
			})
			if err != nil {
				break
			}
		}
		stream.CloseWithError(err)
	}()

	return stream
}

func marshalGraph(X *graph.Graph) []byte {
	edges := X.Edges()
	buf := proto.NewBuffer(make([]byte, 0, 2+2*len(edges)))
	buf.EncodeVarint(uint64(X.NumVertices()))
	buf.EncodeVarint(uint64(len(edges)))
	for _, e := range edges {
		buf.EncodeVarint(uint64(e.A))
		buf.EncodeVarint(uint64(e.B))
	}
	return buf.Bytes()
}

func unmarshalGraph(val []byte) (*graph.Graph, error) {
	buf := proto.NewBuffer(val)

	var hdr [2]uint64
	for i := range hdr {
		var err error
		if hdr[i], err = buf.DecodeVarint(); err != nil {
			return nil, ErrCorruptCatalogDef
		}
	}
	Nv, Ne := hdr[0], hdr[1]
	if Nv > graph.MaxVertices || Ne > Nv*Nv/2 {
		return nil, ErrCorruptCatalogDef
	}

	edges := make([]graph.Edge, Ne)
	for i := range edges {
		a, err := buf.DecodeVarint()
		if err != nil {
			return nil, ErrCorruptCatalogDef
		}
		b, err := buf.DecodeVarint()
		if err != nil {
			return nil, ErrCorruptCatalogDef
		}
		edges[i] = graph.Edge{A: graph.VtxID(a), B: graph.VtxID(b)}
	}

	X, err := graph.NewGraph(int(Nv), edges)
	if err != nil {
		return nil, errors.Wrap(ErrCorruptCatalogDef, err.Error())
	}
	return X, nil
}
