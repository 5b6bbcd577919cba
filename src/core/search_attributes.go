package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/operatorservice/v1"
	"go.temporal.io/sdk/temporal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ProjectTypeField is a keyword search attribute holding the project-type label of a submission
var ProjectTypeField = temporal.NewSearchAttributeKeyKeyword("BriefingProjectType")

// requiredSearchAttributes lists the custom attributes submission workflows upsert
var requiredSearchAttributes = map[string]enums.IndexedValueType{
	ProjectTypeField.GetName(): enums.INDEXED_VALUE_TYPE_KEYWORD,
}

// RegisterSearchAttributesIfNeeded registers the required search attributes with the Temporal server
// if they don't already exist. Called during worker initialization.
func RegisterSearchAttributesIfNeeded(ctx context.Context, hostPort, namespace string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Local development only; Temporal Cloud namespaces are managed outside the worker
	logger.Info("connecting to Temporal to register search attributes", "host_port", hostPort)
	conn, err := grpc.DialContext(ctx, hostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("unable to create gRPC connection to %s: %w. Please register search attributes manually", hostPort, err)
	}
	defer conn.Close()

	operatorClient := operatorservice.NewOperatorServiceClient(conn)

	listResp, err := operatorClient.ListSearchAttributes(ctx, &operatorservice.ListSearchAttributesRequest{
		Namespace: namespace,
	})
	if err != nil {
		return fmt.Errorf("failed to list search attributes (check connection and permissions): %w", err)
	}

	attributesToAdd := make(map[string]enums.IndexedValueType)
	for name, valueType := range requiredSearchAttributes {
		if _, exists := listResp.CustomAttributes[name]; exists {
			logger.Debug("search attribute already registered", "name", name)
			continue
		}
		attributesToAdd[name] = valueType
	}

	if len(attributesToAdd) == 0 {
		logger.Info("all required search attributes are already registered")
		return nil
	}

	_, err = operatorClient.AddSearchAttributes(ctx, &operatorservice.AddSearchAttributesRequest{
		SearchAttributes: attributesToAdd,
		Namespace:        namespace,
	})
	if err != nil {
		// Another worker may have won the race
		errMsg := err.Error()
		if strings.Contains(errMsg, "already exists") ||
			strings.Contains(errMsg, "AlreadyExists") ||
			strings.Contains(errMsg, "already registered") {
			logger.Info("search attributes already exist")
			return nil
		}
		return fmt.Errorf("failed to add search attributes: %w", err)
	}

	for name := range attributesToAdd {
		logger.Info("registered search attribute", "name", name)
	}
	return nil
}
