package ports

import (
	"context"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/meridianlend/ledger/internal/dto"
)

// JournalSvcFacade is the journal engine boundary: the narrow event-posting
// interface the rest of the platform calls into.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	PreviewEntry(ctx context.Context, req dto.CreateEntryRequest) (*dto.PreviewEntryResponse, error)
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	ListLinesByAccount(ctx context.Context, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
	SubmitEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)
	ApproveEntry(ctx context.Context, entryID string, approverID string) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)
	RejectEntry(ctx context.Context, entryID string, reason string, actorID string) (*domain.JournalEntry, error)
	ReverseEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.JournalEntry, error)
}
