package repository

import (
	aggregateRepo "travony/database/repository/aggregate"
	consentRepo "travony/database/repository/consent"
	observationRepo "travony/database/repository/observation"
	providerRepo "travony/database/repository/provider"
)

// Re-export the ProviderRepository interface and constructor.
type ProviderRepository = providerRepo.ProviderRepository

var NewMongoProviderRepo = providerRepo.NewMongoProviderRepo

// Re-export the ObservationRepository interface and constructor.
type ObservationRepository = observationRepo.ObservationRepository

type ScoreFilter = observationRepo.ScoreFilter

var NewMongoObservationRepo = observationRepo.NewMongoObservationRepo

// Re-export the ConsentRepository interface and constructor.
type ConsentRepository = consentRepo.ConsentRepository

var NewMongoConsentRepo = consentRepo.NewMongoConsentRepo

// Re-export the AggregateRepository interface and constructor.
type AggregateRepository = aggregateRepo.AggregateRepository

var NewMongoAggregateRepo = aggregateRepo.NewMongoAggregateRepo
