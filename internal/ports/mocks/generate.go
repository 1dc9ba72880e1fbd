//go:generate mockgen -source=../record_store.go     -destination=./mock_record_store.go     -package=mocks
//go:generate mockgen -source=../cache_storage.go    -destination=./mock_cache_storage.go    -package=mocks
//go:generate mockgen -source=../services.go         -destination=./mock_services.go         -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks

package mocks
