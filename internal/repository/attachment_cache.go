package repository

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/models"
)

const (
	defaultAttachmentCacheSize = 1024
	defaultAttachmentCacheTTL  = 5 * time.Minute
)

type CacheConfig struct {
	Size int           `env:"ATTACHMENT_CACHE_SIZE" envDefault:"1024"`
	TTL  time.Duration `env:"ATTACHMENT_CACHE_TTL" envDefault:"5m"`
}

type attachmentCacheEntry struct {
	attachment models.Attachment
	storedAt   time.Time
}

// pendingRead tracks the store reads in flight for one key. A write to the
// key marks them stale so their result is not cached.
type pendingRead struct {
	readers int
	stale   bool
}

// cachedAttachmentRepository is a cache-aside decorator keyed by row key.
// It keeps raw rows, tombstoned ones included, and applies the removed check
// itself, so a hit and a miss always answer the same.
type cachedAttachmentRepository struct {
	delegate interfaces.AttachmentRepository
	cache    *lru.Cache[string, attachmentCacheEntry]
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]*pendingRead
}

func NewCachedAttachmentRepository(delegate interfaces.AttachmentRepository, config CacheConfig) interfaces.AttachmentRepository {
	if delegate == nil {
		return nil
	}
	if config.Size <= 0 {
		config.Size = defaultAttachmentCacheSize
	}
	if config.TTL <= 0 {
		config.TTL = defaultAttachmentCacheTTL
	}
	cache, err := lru.New[string, attachmentCacheEntry](config.Size)
	if err != nil {
		// lru.New only fails on a non-positive size
		return delegate
	}
	return &cachedAttachmentRepository{
		delegate: delegate,
		cache:    cache,
		ttl:      config.TTL,
		now:      time.Now,
		pending:  make(map[string]*pendingRead),
	}
}

func (c *cachedAttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	if err := c.delegate.Create(ctx, attachment); err != nil {
		return err
	}
	c.invalidate(attachment.AttachmentID)
	return nil
}

func (c *cachedAttachmentRepository) Delete(ctx context.Context, attachment *models.Attachment) error {
	if err := c.delegate.Delete(ctx, attachment); err != nil {
		return err
	}
	c.invalidate(attachment.AttachmentID)
	return nil
}

func (c *cachedAttachmentRepository) Remove(ctx context.Context, attachment *models.Attachment) error {
	if err := c.delegate.Remove(ctx, attachment); err != nil {
		return err
	}
	c.invalidate(attachment.AttachmentID)
	return nil
}

func (c *cachedAttachmentRepository) DeleteRemoved(ctx context.Context, attachment *models.Attachment) (bool, error) {
	deleted, err := c.delegate.DeleteRemoved(ctx, attachment)
	if err != nil {
		return false, err
	}
	if deleted {
		c.invalidate(attachment.AttachmentID)
	}
	return deleted, nil
}

func (c *cachedAttachmentRepository) FindByFilename(ctx context.Context, filename string) *models.Attachment {
	return c.lookup(ctx, filename)
}

func (c *cachedAttachmentRepository) FindByStatusID(ctx context.Context, statusID string) *models.Attachment {
	if statusID == "" {
		return nil
	}
	attachment := c.lookup(ctx, statusID)
	if attachment == nil || attachment.Removed {
		return nil
	}
	return attachment
}

func (c *cachedAttachmentRepository) ListRemoved(ctx context.Context) ([]*models.Attachment, error) {
	return c.delegate.ListRemoved(ctx)
}

// lookup serves the raw row for key, the delegate's FindByFilename being the
// unfiltered by-key read
func (c *cachedAttachmentRepository) lookup(ctx context.Context, key string) *models.Attachment {
	if key == "" {
		return nil
	}

	if entry, ok := c.cache.Get(key); ok {
		if c.now().Sub(entry.storedAt) < c.ttl {
			attachment := entry.attachment
			return &attachment
		}
		c.cache.Remove(key)
	}

	read := c.beginRead(key)
	attachment := c.delegate.FindByFilename(ctx, key)
	c.endRead(key, read, attachment)
	return attachment
}

func (c *cachedAttachmentRepository) beginRead(key string) *pendingRead {
	c.mu.Lock()
	defer c.mu.Unlock()

	read, ok := c.pending[key]
	if !ok {
		read = &pendingRead{}
		c.pending[key] = read
	}
	read.readers++
	return read
}

// endRead caches attachment unless a write to key happened during the read
func (c *cachedAttachmentRepository) endRead(key string, read *pendingRead, attachment *models.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if attachment != nil && !read.stale {
		c.cache.Add(key, attachmentCacheEntry{
			attachment: *attachment,
			storedAt:   c.now(),
		})
	}
	read.readers--
	if read.readers == 0 && c.pending[key] == read {
		delete(c.pending, key)
	}
}

func (c *cachedAttachmentRepository) invalidate(key string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if read, ok := c.pending[key]; ok {
		read.stale = true
		// later reads must not join a stale group
		delete(c.pending, key)
	}
	c.cache.Remove(key)
}
