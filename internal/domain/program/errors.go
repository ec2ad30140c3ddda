package program

import "github.com/sqooli/partner-api/internal/pkg/apperror"

var ErrProgramNotFound = apperror.New(apperror.KindNotFound, "program not found")
