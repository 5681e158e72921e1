package job

import (
	"Agora/internal/pkg/logger"
	"Agora/internal/repository"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

const auditBatchSize = 200

// StatsAuditJob 点赞计数对账
// 冗余计数理论上只靠协调器的原子增减保持一致，这里每天抽查一批热帖，
// 发现计数和账本不一致只记日志，不回写
type StatsAuditJob struct {
	statsRepo repository.BoardStatsRepo
	likeRepo  repository.BoardLikeRepo
}

func NewStatsAuditJob(
	statsRepo repository.BoardStatsRepo,
	likeRepo repository.BoardLikeRepo,
) *StatsAuditJob {
	return &StatsAuditJob{
		statsRepo: statsRepo,
		likeRepo:  likeRepo,
	}
}

func (s *StatsAuditJob) Run() {
	traceID := "job-stats-audit-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	statsList, err := s.statsRepo.GetTopLiked(ctx, auditBatchSize)
	if err != nil {
		log.ErrorContext(ctx, "stats audit: load stats failed", "err", err)
		return
	}

	checked, drifted := 0, 0
	for _, stats := range statsList {
		active, err := s.likeRepo.CountActiveByPostID(ctx, stats.PostID)
		if err != nil {
			log.ErrorContext(ctx, "stats audit: count ledger failed", "postID", stats.PostID, "err", err)
			continue
		}
		checked++

		if active != stats.LikeCount {
			drifted++
			log.ErrorContext(ctx, "stats audit: like count drift",
				"postID", stats.PostID,
				"likeCount", stats.LikeCount,
				"ledgerActive", active,
			)
		}
	}

	log.InfoContext(ctx, "stats audit finished", "checked", checked, "drifted", drifted)
}
