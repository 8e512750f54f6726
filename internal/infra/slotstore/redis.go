package slotstore

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Keys (prefix "court-booking"):
//
//	<prefix>:slot:<court>:<date>:<hour>   booking record, created with SET NX
//	<prefix>:timeline                     zset of slot keys scored by date and hour
//	<prefix>:court:<court>:<date>         set of slot keys per court and date
//	<prefix>:owner:<id>:<date>            set of slot keys per owner and date
//	<prefix>:owner:<id>                   set of all slot keys of an owner
//
// The record and its index entries are always written and removed together
// inside one script, so the indexes never reference a missing record.
var insertScript = redis.NewScript(`
if redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	redis.call('ZADD', KEYS[2], ARGV[2], KEYS[1])
	redis.call('SADD', KEYS[3], KEYS[1])
	redis.call('SADD', KEYS[4], KEYS[1])
	redis.call('SADD', KEYS[5], KEYS[1])
	return 1
end
return 0
`)

// deleteScript removes the record only if it still holds the payload read by
// the caller. It returns -1 when the slot was rebooked in between.
var deleteScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then
	return 0
end
if current ~= ARGV[1] then
	return -1
end
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], KEYS[1])
redis.call('SREM', KEYS[3], KEYS[1])
redis.call('SREM', KEYS[4], KEYS[1])
redis.call('SREM', KEYS[5], KEYS[1])
return 1
`)

const maxDeleteAttempts = 3

var errSlotContended = errs.New("slot changed during delete")

type record struct {
	CourtID     int64     `json:"court_id"`
	Date        string    `json:"date"`
	Hour        int       `json:"hour"`
	OwnerID     uuid.UUID `json:"owner_id"`
	EntryTypeID int64     `json:"entry_type_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

type RedisOption func(*RedisStore)

func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func NewRedisStore(rdb *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		rdb:    rdb,
		prefix: "court-booking",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) InsertIfAbsent(ctx context.Context, b *booking.Booking) (bool, error) {
	id := b.Slot()
	payload, err := json.Marshal(toRecord(b))
	if err != nil {
		return false, errs.Wrap(err, "marshal booking")
	}

	n, err := insertScript.Run(ctx, s.rdb, s.indexKeys(id, b.OwnerID()), payload, score(id.Date, id.Hour)).Int()
	if err != nil {
		return false, storeErr("failed to insert booking", err)
	}
	return n == 1, nil
}

func (s *RedisStore) DeleteIfExists(ctx context.Context, id slot.Identity) (bool, error) {
	for attempt := 0; attempt < maxDeleteAttempts; attempt++ {
		raw, err := s.rdb.Get(ctx, s.slotKey(id)).Result()
		if errs.Is(err, redis.Nil) {
			return false, nil
		}
		if err != nil {
			return false, storeErr("failed to read booking", err)
		}

		rec, err := decodeRecord(raw)
		if err != nil {
			return false, err
		}

		n, err := deleteScript.Run(ctx, s.rdb, s.indexKeys(id, rec.OwnerID), raw).Int()
		if err != nil {
			return false, storeErr("failed to delete booking", err)
		}
		switch n {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}
	return false, storeErr("failed to delete booking", errSlotContended)
}

func (s *RedisStore) Get(ctx context.Context, id slot.Identity) (*booking.Booking, error) {
	raw, err := s.rdb.Get(ctx, s.slotKey(id)).Result()
	if errs.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to get booking", err)
	}
	rec, err := decodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return rec.toBooking()
}

func (s *RedisStore) ListFrom(ctx context.Context, date slot.Date, hour int) ([]*booking.Booking, error) {
	keys, err := s.rdb.ZRangeByScore(ctx, s.timelineKey(), &redis.ZRangeBy{
		Min: strconv.FormatInt(score(date, hour), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, storeErr("failed to list upcoming bookings", err)
	}
	return s.load(ctx, keys)
}

func (s *RedisStore) ListByCourtAndDate(ctx context.Context, courtID int64, date slot.Date) ([]*booking.Booking, error) {
	keys, err := s.rdb.SMembers(ctx, s.courtDayKey(courtID, date)).Result()
	if err != nil {
		return nil, storeErr("failed to list court bookings", err)
	}
	return s.load(ctx, keys)
}

func (s *RedisStore) CountByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date slot.Date) (int, error) {
	n, err := s.rdb.SCard(ctx, s.ownerDayKey(ownerID, date)).Result()
	if err != nil {
		return 0, storeErr("failed to count bookings", err)
	}
	return int(n), nil
}

func (s *RedisStore) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	keys, err := s.rdb.SMembers(ctx, s.ownerKey(ownerID)).Result()
	if err != nil {
		return 0, storeErr("failed to list bookings of owner", err)
	}

	bookings, err := s.load(ctx, keys)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, b := range bookings {
		if !b.IsOwnedBy(ownerID) {
			continue
		}
		deleted, err := s.DeleteIfExists(ctx, b.Slot())
		if err != nil {
			return n, err
		}
		if deleted {
			n++
		}
	}
	return n, nil
}

// load resolves slot keys to bookings, skipping keys deleted since the index read.
func (s *RedisStore) load(ctx context.Context, keys []string) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeErr("failed to load bookings", err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		b, err := rec.toBooking()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	sortBookings(out)
	return out, nil
}

func (s *RedisStore) indexKeys(id slot.Identity, ownerID uuid.UUID) []string {
	return []string{
		s.slotKey(id),
		s.timelineKey(),
		s.courtDayKey(id.CourtID, id.Date),
		s.ownerDayKey(ownerID, id.Date),
		s.ownerKey(ownerID),
	}
}

func (s *RedisStore) slotKey(id slot.Identity) string {
	return s.prefix + ":slot:" + id.Key()
}

func (s *RedisStore) timelineKey() string {
	return s.prefix + ":timeline"
}

func (s *RedisStore) courtDayKey(courtID int64, date slot.Date) string {
	return s.prefix + ":court:" + strconv.FormatInt(courtID, 10) + ":" + date.String()
}

func (s *RedisStore) ownerDayKey(ownerID uuid.UUID, date slot.Date) string {
	return s.ownerKey(ownerID) + ":" + date.String()
}

func (s *RedisStore) ownerKey(ownerID uuid.UUID) string {
	return s.prefix + ":owner:" + ownerID.String()
}

// score orders slots by date then hour.
func score(date slot.Date, hour int) int64 {
	days := date.Time().Unix() / int64(24*time.Hour/time.Second)
	return days*24 + int64(hour)
}

func toRecord(b *booking.Booking) record {
	id := b.Slot()
	return record{
		CourtID:     id.CourtID,
		Date:        id.Date.String(),
		Hour:        id.Hour,
		OwnerID:     b.OwnerID(),
		EntryTypeID: b.EntryTypeID(),
		CreatedAt:   b.CreatedAt(),
	}
}

func decodeRecord(raw string) (record, error) {
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return record{}, infra.WrapRepoErr("corrupt booking record", err, infra.KindStoreFailure)
	}
	return rec, nil
}

func (r record) toBooking() (*booking.Booking, error) {
	date, err := slot.ParseDate(r.Date)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking date", err, infra.KindStoreFailure)
	}
	id, err := slot.New(r.CourtID, date, r.Hour)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking slot", err, infra.KindStoreFailure)
	}
	return booking.ReconstructBooking(id, r.OwnerID, r.EntryTypeID, r.CreatedAt), nil
}

func storeErr(msg string, err error) error {
	return infra.WrapRepoErr(msg, err, infra.KindStoreFailure)
}
