package handler

import jsoniter "github.com/json-iterator/go"

// json substitui o encoding/json em todos os handlers
var json = jsoniter.ConfigCompatibleWithStandardLibrary
