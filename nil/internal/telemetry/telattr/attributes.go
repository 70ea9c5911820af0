package telattr

import (
	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"go.opentelemetry.io/otel/attribute"
)

func RpcMethod(method string) attribute.KeyValue {
	return attribute.String(logging.FieldRpcMethod, method)
}

func Component(name string) attribute.KeyValue {
	return attribute.String(logging.FieldComponent, name)
}

func Found(found bool) attribute.KeyValue {
	return attribute.Bool("found", found)
}
