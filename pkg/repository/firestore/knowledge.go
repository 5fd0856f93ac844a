package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hatchpay/concierge/pkg/domain/model"
)

// chunkDoc is the Firestore document representation of model.Chunk.
// Embedding is stored as firestore.Vector32 so that FindNearest vector
// search works.
type chunkDoc struct {
	ID        model.ChunkID      `firestore:"ID"`
	Source    string             `firestore:"Source"`
	Content   string             `firestore:"Content"`
	Embedding firestore.Vector32 `firestore:"Embedding,omitempty"`
	CreatedAt time.Time          `firestore:"CreatedAt"`
}

func toChunkDoc(c *model.Chunk) *chunkDoc {
	doc := &chunkDoc{
		ID:        c.ID,
		Source:    c.Source,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if len(c.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(c.Embedding)
	}
	return doc
}

func fromChunkDoc(d *chunkDoc) *model.Chunk {
	c := &model.Chunk{
		ID:        d.ID,
		Source:    d.Source,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		c.Embedding = []float32(d.Embedding)
	}
	return c
}

func docToChunk(doc *firestore.DocumentSnapshot) (*model.Chunk, error) {
	var d chunkDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromChunkDoc(&d), nil
}

type knowledgeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newKnowledgeRepository(client *firestore.Client) *knowledgeRepository {
	return &knowledgeRepository{
		client: client,
	}
}

func (r *knowledgeRepository) chunksCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_chunks"
	}
	return "chunks"
}

func (r *knowledgeRepository) corpusCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_corpus"
	}
	return "corpus"
}

func (r *knowledgeRepository) ReplaceChunks(ctx context.Context, source string, chunks []*model.Chunk) error {
	col := r.client.Collection(r.chunksCollection())

	// Remove the previous generation of this source before writing the new
	// one, so retrieval never mixes stale and fresh chunks.
	iter := col.Where("Source", "==", source).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate stale chunks", goerr.V("source", source))
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return goerr.Wrap(err, "failed to queue chunk deletion", goerr.V("source", source))
		}
	}

	now := time.Now().UTC()
	for _, c := range chunks {
		stored := *c
		if stored.ID == "" {
			stored.ID = model.NewChunkID()
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		if _, err := bw.Set(col.Doc(string(stored.ID)), toChunkDoc(&stored)); err != nil {
			return goerr.Wrap(err, "failed to queue chunk write", goerr.V("source", source))
		}
	}

	bw.End()
	return nil
}

func (r *knowledgeRepository) FindByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.Chunk, error) {
	vq := r.client.Collection(r.chunksCollection()).
		FindNearest("Embedding", firestore.Vector32(embedding), limit, firestore.DistanceMeasureCosine, nil)

	iter := vq.Documents(ctx)
	defer iter.Stop()

	chunks := make([]*model.Chunk, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vector search results")
		}

		c, err := docToChunk(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal chunk")
		}
		chunks = append(chunks, c)
	}

	return chunks, nil
}

const corpusRefreshDoc = "refresh"

type corpusMetaDoc struct {
	RefreshedAt time.Time `firestore:"RefreshedAt"`
}

func (r *knowledgeRepository) LastRefreshedAt(ctx context.Context) (time.Time, error) {
	doc, err := r.client.Collection(r.corpusCollection()).Doc(corpusRefreshDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return time.Time{}, nil
		}
		return time.Time{}, goerr.Wrap(err, "failed to get corpus metadata")
	}

	var meta corpusMetaDoc
	if err := doc.DataTo(&meta); err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to unmarshal corpus metadata")
	}

	return meta.RefreshedAt, nil
}

func (r *knowledgeRepository) SetLastRefreshedAt(ctx context.Context, t time.Time) error {
	docRef := r.client.Collection(r.corpusCollection()).Doc(corpusRefreshDoc)
	if _, err := docRef.Set(ctx, &corpusMetaDoc{RefreshedAt: t}); err != nil {
		return goerr.Wrap(err, "failed to set corpus metadata")
	}
	return nil
}
