package repositories

import (
	auditRepo "wikiflow/internal/domain/repositories/audit"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
)

// Set is every repository of one storage backend, sharing one TransactionManager
type Set struct {
	Spaces   wikiRepo.SpaceRepository
	Articles wikiRepo.ArticleRepository
	Versions wikiRepo.VersionRepository
	Reviews  wikiRepo.ReviewRepository
	Tags     wikiRepo.TagRepository
	Comments wikiRepo.CommentRepository
	Users    UserRepository
	Events   auditRepo.EventRepository
	Tx       TransactionManager
}
