// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/sirupsen/logrus"
)

// InitSignalProcessor creates the processor that turns engine outcomes into
// one effect signal per tag.
func InitSignalProcessor(namespace string) *signal.Processor {
	processor := signal.NewProcessor(namespace)
	logrus.Infof("initialized signal processor for namespace %s", namespace)
	return processor
}
